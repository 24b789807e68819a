package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AquaBuilt/aqua-built-backend/logger"
	"github.com/AquaBuilt/aqua-built-backend/middleware"
	"github.com/AquaBuilt/aqua-built-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	m.Run()
}

type mockIngestService struct {
	mock.Mock
}

func (m *mockIngestService) IngestContract(ctx context.Context, rawEmail string) (*types.ContractExtraction, error) {
	args := m.Called(ctx, rawEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ContractExtraction), args.Error(1)
}

func (m *mockIngestService) ProcessAddendum(ctx context.Context, url string) types.AddendumResult {
	args := m.Called(ctx, url)
	return args.Get(0).(types.AddendumResult)
}

func (m *mockIngestService) ValidateAddendumURL(url string) types.AddendumResult {
	args := m.Called(url)
	return args.Get(0).(types.AddendumResult)
}

// newTestRouter builds a gin engine with the same error middleware the real
// router installs, so handler error paths produce production responses.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) types.StandardResponse {
	t.Helper()
	var resp types.StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
