// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/figures/internal/api"
	"github.com/taibuivan/figures/internal/figure"
	"github.com/taibuivan/figures/internal/platform/config"
	"github.com/taibuivan/figures/internal/web"
)

type fixedRepository struct {
	rows [][]string
	err  error
}

func (repo fixedRepository) FetchRows(context.Context) ([][]string, error) {
	return repo.rows, repo.err
}

func (repo fixedRepository) Diagnose(context.Context) figure.Diagnostics {
	return figure.Diagnostics{Env: figure.EnvDiagnostics{HasAPIKey: true, HasSheetID: true}}
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }

func newTestServer(t *testing.T, environment string, repo figure.Repository, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "8080", Environment: environment}

	service := figure.NewService(repo, logger)
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	server := api.NewServer(cfg, logger, allowAll{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Figures:   figure.NewHandler(service),
		Gallery:   web.NewHandler(service, web.Images{Host: "drive.google.com", Placeholder: "/static/placeholder.svg"}),
	})
	return server.Handler()
}

func do(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

var oneRow = fixedRepository{rows: [][]string{{"Guru Nanak", "ਗੁਰੂ ਨਾਨਕ", "1469", "1539"}}}

/*
TestServer_Routes checks every mounted route answers GET.
*/
func TestServer_Routes(t *testing.T) {
	handler := newTestServer(t, "development", oneRow, api.HealthDependencies{})

	tests := []struct {
		target      string
		contentType string
	}{
		{"/health", "application/json; charset=utf-8"},
		{"/ready", "application/json; charset=utf-8"},
		{"/api/figures", "application/json; charset=utf-8"},
		{"/api/figures/tags", "application/json; charset=utf-8"},
		{"/api/debug", "application/json; charset=utf-8"},
		{"/", "text/html; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := do(handler, http.MethodGet, tt.target)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.contentType, recorder.Header().Get("Content-Type"))
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

/*
TestServer_MethodNotAllowed answers non-GET requests with a JSON 405.
*/
func TestServer_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(t, "development", oneRow, api.HealthDependencies{})

	for _, target := range []string{"/api/figures", "/api/figures/tags", "/"} {
		t.Run(target, func(t *testing.T) {
			recorder := do(handler, http.MethodPost, target)

			require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "Method not allowed", body["message"])
		})
	}
}

/*
TestServer_ProductionHidesDebug removes diagnostics and error traces in production.
*/
func TestServer_ProductionHidesDebug(t *testing.T) {
	failing := fixedRepository{err: &figure.ConfigurationError{Missing: figure.CredentialName}}

	production := newTestServer(t, "production", failing, api.HealthDependencies{})
	assert.Equal(t, http.StatusNotFound, do(production, http.MethodGet, "/api/debug").Code)

	recorder := do(production, http.MethodGet, "/api/figures")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), `"trace"`)

	development := newTestServer(t, "development", failing, api.HealthDependencies{})
	recorder = do(development, http.MethodGet, "/api/figures")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"trace"`)
	assert.Contains(t, recorder.Body.String(), "GOOGLE_SHEETS_API_KEY")
}

/*
TestServer_Readiness reports each dependency and degrades on failure.
*/
func TestServer_Readiness(t *testing.T) {
	handler := newTestServer(t, "development", oneRow, api.HealthDependencies{
		CheckSheets: func(context.Context) error { return nil },
		CheckCache:  func(context.Context) error { return errors.New("redis: ping failed") },
	})

	recorder := do(handler, http.MethodGet, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name  string `json:"name"`
				OK    bool   `json:"ok"`
				Error string `json:"error"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.Equal(t, "sheets", body.Data.Checks[0].Name)
	assert.True(t, body.Data.Checks[0].OK)
	assert.Equal(t, "redis", body.Data.Checks[1].Name)
	assert.Equal(t, "redis: ping failed", body.Data.Checks[1].Error)
}

/*
TestServer_NotFound answers unknown routes with the JSON error envelope.
*/
func TestServer_NotFound(t *testing.T) {
	recorder := do(newTestServer(t, "development", oneRow, api.HealthDependencies{}), http.MethodGet, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
}
