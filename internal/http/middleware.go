package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds basic hardening headers to every response.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// CORSMiddleware allows cross-origin API access from the given origins.
// A single "*" allows any origin. Returns nil when no origins are configured.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	var allowed []string
	allowAll := false
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch o {
		case "":
			continue
		case "*":
			allowAll = true
		default:
			allowed = append(allowed, o)
		}
	}

	if !allowAll && len(allowed) == 0 {
		return nil
	}

	cfg := cors.DefaultConfig()
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}
	return cors.New(cfg)
}
