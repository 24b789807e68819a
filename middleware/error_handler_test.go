package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	m.Run()
}

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandlerAppError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.ExtractionFailed("No line items found", "zero rows classified"))
	})

	w := performRequest(r, http.MethodGet, "/fail")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, string(apperrors.ExtractionFailure), body["type"])
	assert.Equal(t, "No line items found", body["message"])
	assert.Equal(t, "zero rows classified", body["details"])
	assert.Equal(t, "422", body["code"])
}

func TestErrorHandlerUnreachableDetailExposed(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fetch", func(c *gin.Context) {
		_ = c.Error(apperrors.Unreachable("https://l1.prodbx.com/go/view/?1.1.1",
			fmt.Errorf("dial tcp: connection refused")))
	})

	w := performRequest(r, http.MethodGet, "/fetch")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, string(apperrors.UnreachableError), body["type"])
	assert.Contains(t, body["details"], "connection refused")
}

func TestErrorHandlerUnknownError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	w := performRequest(r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, string(apperrors.ServerError), body["type"])
	assert.Equal(t, "Internal Server Error", body["message"])
}

func TestErrorHandlerNoError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := performRequest(r, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryHandler(t *testing.T) {
	r := gin.New()
	r.Use(gin.CustomRecovery(RecoveryHandler))
	r.GET("/panic", func(c *gin.Context) {
		panic("unexpected page shape")
	})

	w := performRequest(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, string(apperrors.ServerError), body["type"])
}
