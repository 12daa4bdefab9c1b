// Package middleware はHTTPサーバー共通のGinミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを運ぶヘッダー名です。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.Contextに保存するキーです。
	ContextRequestID = "requestID"
)

// maxRequestIDLen を超えるクライアント指定のIDは採用しません。
const maxRequestIDLen = 128

// RequestID returns a middleware that tags every request with an ID. A
// client-supplied X-Request-ID is kept when it is short enough; otherwise a
// new UUID is generated. The ID is echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID はコンテキストに保存されたリクエストIDを返します。
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
