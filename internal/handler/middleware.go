package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CallerHeader 呼叫者身份來自上游閘道驗證過的 header
	CallerHeader = "X-Caller-ID"
	callerKey    = "caller_id"
)

// CallerIdentity 取出呼叫者身份放進 context；缺少身份的請求一律擋下
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader(CallerHeader)
		if caller == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing caller identity",
			})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// GetCaller 從 context 取出呼叫者身份
func GetCaller(c *gin.Context) string {
	return c.GetString(callerKey)
}
