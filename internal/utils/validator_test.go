// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneFixture struct {
	Phone string `validate:"cn_phone"`
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"13800138000", "19912345678", "15011112222"}
	for _, phone := range valid {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}

	invalid := []string{"12345678901", "1380013800", "138001380000", "23800138000", "abcdefghijk", ""}
	for _, phone := range invalid {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}
}

func TestGetValidationErrors(t *testing.T) {
	type fixture struct {
		Title string `validate:"required,min=2"`
		Link  string `validate:"omitempty,url"`
	}

	errs := GetValidationErrors(ValidateStruct(&fixture{Link: "not-a-url"}))
	assert.Len(t, errs, 2)

	fields := make(map[string]string)
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "required", fields["title"])
	assert.Equal(t, "url", fields["link"])

	assert.Empty(t, GetValidationErrors(ValidateStruct(&fixture{Title: "ok"})))
	assert.Empty(t, GetValidationErrors(nil))
}
