package middleware

import (
	"net/http"
	"strings"

	"StrategyGame/internal/shared/security"
	"StrategyGame/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

// PlayerIDKey 是认证通过后写入 gin 上下文的玩家 id 键。
const PlayerIDKey = "player_id"

// JWTAuth 校验 Bearer token，通过后把玩家 id 放进请求上下文。
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "msg": "缺少凭证"})
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil || claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "msg": "凭证无效"})
			return
		}
		c.Set(PlayerIDKey, claims.PlayerID)
		c.Next()
	}
}
