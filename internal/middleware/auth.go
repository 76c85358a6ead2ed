// internal/middleware/auth.go
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/config"
	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

// Identity resolves the gateway-injected identity headers for every request.
// The upstream gateway has already verified the user; the raw header value is
// trusted as-is. A missing header simply means anonymous; endpoints that need
// identity gate on AuthRequired below.
func Identity(db *gorm.DB, cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		openid := c.GetHeader(cfg.OpenIDHeader)
		if openid == "" {
			c.Next()
			return
		}

		c.Set("openid", openid)
		if unionid := c.GetHeader(cfg.UnionIDHeader); unionid != "" {
			c.Set("unionid", unionid)
		}

		var user models.User
		err := db.Where("wechat_openid = ?", openid).First(&user).Error
		if err != nil {
			// Unknown openid is not an error here: the login endpoint
			// creates the user on first contact.
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.InternalErrorResponse(c, "")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Next()
	}
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c); !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
