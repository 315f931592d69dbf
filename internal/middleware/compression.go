// Package middleware provides HTTP middleware for the storefront API.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that advertise gzip support.
// Catalog listings and signed URL payloads compress well.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression)
}
