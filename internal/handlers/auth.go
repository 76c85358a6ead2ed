// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/petbao/petbao-backend/internal/i18n"
	"github.com/petbao/petbao-backend/internal/services"
	"github.com/petbao/petbao-backend/internal/utils"
)

type AuthHandler struct {
	identityService *services.IdentityService
}

type WechatLoginRequest struct {
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func NewAuthHandler(identityService *services.IdentityService) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

// POST /api/auth/wechat-login
//
// The cloud-hosting gateway injects the verified openid; there is no code
// exchange and no token in the response. First contact creates the user.
func (h *AuthHandler) WechatLogin(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	openid := c.GetString("openid")
	if openid == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthMissingOpenID), nil)
		return
	}

	var req WechatLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	user, err := h.identityService.Resolve(&services.ResolveIdentityRequest{
		OpenID:   openid,
		UnionID:  c.GetString("unionid"),
		Nickname: req.Nickname,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondServiceError(c, err, i18n.KeyUserNotFound, i18n.KeyValidationInvalid)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":    user,
	})
}
