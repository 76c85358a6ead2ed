// internal/services/identity_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
)

// IdentityService maps the gateway-verified openid onto a user record,
// creating one on first contact. Resolution is idempotent: a concurrent
// first-contact race loses the insert on the openid unique index and re-reads
// the winner's row instead of failing.
type IdentityService struct {
	db *gorm.DB
}

type ResolveIdentityRequest struct {
	OpenID   string `validate:"required"`
	UnionID  string
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

func (s *IdentityService) Resolve(req *ResolveIdentityRequest) (*models.User, error) {
	if req.OpenID == "" {
		return nil, fmt.Errorf("%w: openid", ErrInvalidState)
	}

	var user models.User
	err := s.db.Where("wechat_openid = ?", req.OpenID).First(&user).Error
	if err == nil {
		return s.applyProfileOverrides(&user, req)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user = models.User{
		Username:      syntheticUsername(req.OpenID),
		WechatOpenID:  &req.OpenID,
		WechatUnionID: normalizeUnionID(req.UnionID),
		Nickname:      req.Nickname,
		Avatar:        req.Avatar,
	}
	if user.Nickname == "" {
		user.Nickname = syntheticNickname(req.OpenID)
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Lost a first-contact race: another request inserted the same
		// openid between our read and write. Resolve to the winner.
		var existing models.User
		if lookupErr := s.db.Where("wechat_openid = ?", req.OpenID).First(&existing).Error; lookupErr == nil {
			return s.applyProfileOverrides(&existing, req)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUser returns the user record for an already-resolved identity.
func (s *IdentityService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *IdentityService) applyProfileOverrides(user *models.User, req *ResolveIdentityRequest) (*models.User, error) {
	updates := make(map[string]interface{})
	if req.Nickname != "" && req.Nickname != user.Nickname {
		updates["nickname"] = req.Nickname
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" && req.Avatar != user.Avatar {
		updates["avatar"] = req.Avatar
		user.Avatar = req.Avatar
	}
	if user.WechatUnionID == nil {
		if unionID := normalizeUnionID(req.UnionID); unionID != nil {
			updates["wechat_union_id"] = *unionID
			user.WechatUnionID = unionID
		}
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// normalizeUnionID maps the empty string to NULL so users without a unionid
// never collide on the unique index.
func normalizeUnionID(unionID string) *string {
	unionID = strings.TrimSpace(unionID)
	if unionID == "" {
		return nil
	}
	return &unionID
}

func syntheticUsername(openid string) string {
	return "wx_" + truncate(openid, 10)
}

func syntheticNickname(openid string) string {
	return "用户" + truncate(openid, 6)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
