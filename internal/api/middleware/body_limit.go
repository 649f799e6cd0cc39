package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrinceKarma/swe-642-hw3/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）
//
// 声明了 Content-Length 的请求直接拒绝；分块传输的请求体由 MaxBytesReader 截断，
// 读取时返回 *http.MaxBytesError，由 Handler 映射为 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.BodyTooLarge(c)
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
