package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

// VisitorKey 是访客标识在 Gin 上下文中的键。
const VisitorKey = "uid"

// visitorCookieName 是访客标识 cookie 的名称。
const visitorCookieName = "uid"

// visitorCookieMaxAge 是访客 cookie 的有效期（十年），
// 让同一浏览器的访问长期归于同一个访客标识。
const visitorCookieMaxAge = 10 * 365 * 24 * 60 * 60

// VisitorID 创建一个 Gin 中间件，为每个浏览器分配持久的访客标识。
// 首次访问时生成随机 uid 写入 cookie，后续访问复用；
// uid 只用于浏览计数去重，不关联任何账号信息。
func VisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := c.Cookie(visitorCookieName)
		if err != nil || uid == "" {
			uid = newVisitorID()
			c.SetCookie(visitorCookieName, uid, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(VisitorKey, uid)
		c.Next()
	}
}

// newVisitorID 生成 16 字节的随机访客标识，十六进制编码。
func newVisitorID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
