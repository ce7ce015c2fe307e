package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestRequestID はRequestIDミドルウェアを検証する。
func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("X-Request-IDが無い場合は新規に採番されること", func(t *testing.T) {
		t.Parallel()

		var captured string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			captured = GetRequestID(c)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if captured == "" {
			t.Fatal("リクエストIDが採番されなかった")
		}
		if _, err := uuid.Parse(captured); err != nil {
			t.Errorf("UUIDとして解釈できない: %q", captured)
		}
		if got := w.Header().Get(HeaderRequestID); got != captured {
			t.Errorf("レスポンスヘッダー = %q, want %q", got, captured)
		}
	})

	t.Run("クライアント指定のX-Request-IDが尊重されること", func(t *testing.T) {
		t.Parallel()

		var captured string
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			captured = GetRequestID(c)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "client-supplied-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if captured != "client-supplied-id" {
			t.Errorf("リクエストID = %q, want client-supplied-id", captured)
		}
	})

	t.Run("ミドルウェア未適用の場合は空文字を返すこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.GET("/test", func(c *gin.Context) {
			if got := GetRequestID(c); got != "" {
				t.Errorf("GetRequestID = %q, want empty", got)
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	})
}
