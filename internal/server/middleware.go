package server

import (
	"compress/gzip"
	"context"
	"log"
	"net/http"
	"strings"

	"tasks/internal/domain/ident"

	"github.com/gin-gonic/gin"
)

// ctxUserID is the gin context key the resolved caller identity travels
// under between the auth gate and the handlers.
const ctxUserID = "userID"

// IdentityStore answers whether a bearer ID belongs to a registered user.
type IdentityStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Auth is the first gate, applied to every route. A missing bearer token
// is allowed through without an identity so that the public user routes
// still work; a present token must be well-formed and registered.
func Auth(store IdentityStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			ctx.Next()
			return
		}

		if !ident.IsValidID(token) {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":   "fail",
				"messages": []string{"Invalid ID"},
			})
			return
		}

		exists, err := store.Exists(ctx.Request.Context(), token)
		if err != nil {
			log.Println("[ERROR] Identity lookup failed:", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Internal server error",
			})
			return
		}
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":   "fail",
				"messages": []string{"Authorization failed"},
			})
			return
		}

		ctx.Set(ctxUserID, token)
		ctx.Next()
	}
}

// AuthRequired is the second gate for the list and task routes: stage one
// must have attached an identity.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ctxUserID) == "" {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":   "fail",
				"messages": []string{"Authorization required"},
			})
			return
		}
		ctx.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

type gzipResponseWriter struct {
	gin.ResponseWriter
	gw *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gw.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gw.Write([]byte(s))
}

// GzipResponseCompress compresses response bodies for clients that accept
// gzip. Payloads here are always JSON, so no content-type gating.
func GzipResponseCompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodHead {
			ctx.Next()
			return
		}
		acceptEnc := strings.ToLower(ctx.GetHeader("Accept-Encoding"))
		if !strings.Contains(acceptEnc, "gzip") {
			ctx.Next()
			return
		}

		ctx.Header("Content-Encoding", "gzip")
		ctx.Header("Vary", "Accept-Encoding")

		gw := gzip.NewWriter(ctx.Writer)
		ctx.Writer = &gzipResponseWriter{ResponseWriter: ctx.Writer, gw: gw}

		ctx.Next()

		if err := gw.Close(); err != nil {
			_ = ctx.Error(err)
		}
	}
}
