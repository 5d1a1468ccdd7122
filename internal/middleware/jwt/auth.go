package jwt

import (
	"strings"

	"RentLink/pkg/back"
	"RentLink/pkg/tenant"
	"RentLink/pkg/util/myjwt"
	"RentLink/pkg/xerr"

	"github.com/gin-gonic/gin"
)

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}
		if claims.TenantId == "" {
			back.Error(c, xerr.Unauthorized, "token missing tenant")
			c.Abort()
			return
		}

		c.Set("uuid", claims.Uuid)
		c.Set("username", claims.Username)
		c.Set("tenant_id", claims.TenantId)

		// 租户作用域随请求 context 显式传递，仓储层依赖它做数据隔离
		ctx := tenant.With(c.Request.Context(), tenant.Scope{
			TenantID: claims.TenantId,
			UserID:   claims.Uuid,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
