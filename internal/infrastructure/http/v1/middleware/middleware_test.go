package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tokopos/internal/core/apperror"
	"tokopos/pkg/logger"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func newTestRouter(log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.Use(Logger(log))
	r.Use(ErrorHandler())
	return r
}

func TestRecoveryRendersInternalError(t *testing.T) {
	log, _ := observedLogger()
	r := newTestRouter(log)
	r.GET("/boom", func(c *gin.Context) {
		panic("kaput")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["code"] != apperror.CodeInternal {
		t.Errorf("code = %v, want %s", body["code"], apperror.CodeInternal)
	}
	if body["error"] == "kaput" {
		t.Error("panic value leaked to the client")
	}
}

func TestLoggerWritesCompletionLine(t *testing.T) {
	log, logs := observedLogger()
	r := newTestRouter(log)
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?limit=5", nil))

	entries := logs.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("completion lines = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", entry.Level)
	}

	fields := entry.ContextMap()
	if fields["path"] != "/ok" {
		t.Errorf("path = %v, want /ok", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status = %v, want 200", fields["status"])
	}
}

func TestLoggerEscalatesServerErrors(t *testing.T) {
	log, logs := observedLogger()
	r := newTestRouter(log)
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperror.NewInternal(nil))
		c.Abort()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("completion lines = %d, want 1", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %v, want error for a 500", entries[0].Level)
	}
}

func TestLoggerInjectsContextLogger(t *testing.T) {
	log, logs := observedLogger()
	r := newTestRouter(log)
	r.GET("/ctx", func(c *gin.Context) {
		logger.Info(c.Request.Context(), "inside handler")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ctx", nil))

	if got := len(logs.FilterMessage("inside handler").All()); got != 1 {
		t.Errorf("handler log lines captured = %d, want 1", got)
	}
}
