package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sindegeologico/sindeform/middlewares"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []middlewares.CORSOption
		method      string
		origin      string
		wantOrigin  string
		wantStatus  int
		wantMethods string
	}{
		{name: "no origin passes through", method: http.MethodPost, wantStatus: http.StatusOK},
		{name: "wildcard simple request", method: http.MethodPost, origin: "https://app.example", wantOrigin: "*", wantStatus: http.StatusOK},
		{name: "wildcard preflight", method: http.MethodOptions, origin: "https://app.example", wantOrigin: "*", wantStatus: http.StatusNoContent, wantMethods: "GET, POST, OPTIONS"},
		{name: "listed origin echoed", opts: []middlewares.CORSOption{middlewares.WithAllowOrigins("https://a.example", " ")}, method: http.MethodPost, origin: "https://a.example", wantOrigin: "https://a.example", wantStatus: http.StatusOK},
		{name: "unlisted origin undecorated", opts: []middlewares.CORSOption{middlewares.WithAllowOrigins("https://a.example")}, method: http.MethodPost, origin: "https://b.example", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/send-pdf", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			require.NoError(t, middlewares.CORS(tt.opts...)(okHandler)(newTestContext(rec, req)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestCORS_PreflightHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/api/send-pdf", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()

	mw := middlewares.CORS(middlewares.WithAllowHeaders("Content-Type"), middlewares.WithMaxAge(time.Minute))
	require.NoError(t, mw(okHandler)(newTestContext(rec, req)))

	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "60", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	assert.Empty(t, rec.Body.String())
}
