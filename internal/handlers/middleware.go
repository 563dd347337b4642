package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 12 * time.Hour

var corsMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodHead, http.MethodOptions,
}

var corsHeaders = []string{
	"Origin", "Content-Type", "Content-Length", "Accept",
	"Accept-Encoding", "Authorization", "X-Requested-With", "X-CSRF-Token",
}

// corsMiddleware allows the configured origins with credentials. The
// wildcard reflects the caller's origin, since "*" is not valid together
// with credentials.
func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}
	if h.cors.AllowsAllOrigins() {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = h.cors.Origins
	}
	return cors.New(cfg)
}

// preflightAllowHeaders answers a preflight with the headers it asked for,
// so any request header is allowed. It must run before corsMiddleware.
func preflightAllowHeaders(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			c.Writer = &allowHeadersWriter{ResponseWriter: c.Writer, requested: requested}
		}
	}
	c.Next()
}

// allowHeadersWriter rewrites Allow-Headers on responses that granted an origin.
type allowHeadersWriter struct {
	gin.ResponseWriter
	requested string
}

func (w *allowHeadersWriter) WriteHeader(code int) {
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		w.Header().Set("Access-Control-Allow-Headers", w.requested)
	}
	w.ResponseWriter.WriteHeader(code)
}

// checkOrigin applies the CORS allow-list to websocket upgrades.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.cors.AllowsAllOrigins() {
		return true
	}
	for _, o := range h.cors.Origins {
		if o == origin {
			return true
		}
	}
	return false
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
