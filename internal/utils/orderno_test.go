// internal/utils/orderno_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNo(t *testing.T) {
	orderNo, err := GenerateOrderNo()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(orderNo, "PB"))
	// "PB" + 13 digit millisecond timestamp + 6 char suffix
	assert.Len(t, orderNo, 21)

	// suffix charset excludes the ambiguous I and O
	suffix := orderNo[len(orderNo)-6:]
	assert.NotContains(t, suffix, "I")
	assert.NotContains(t, suffix, "O")
}

func TestGenerateOrderNoUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		orderNo, err := GenerateOrderNo()
		require.NoError(t, err)
		assert.False(t, seen[orderNo], "duplicate order number %s", orderNo)
		seen[orderNo] = true
	}
}
