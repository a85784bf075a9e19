// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/figures/internal/figure"
	"github.com/taibuivan/figures/internal/gallery"
)

func newServer(t *testing.T, status int, body string, seen *atomic.Value) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if seen != nil {
			seen.Store(request.URL.RequestURI())
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

/*
TestClient_Fetch decodes the bare array.
*/
func TestClient_Fetch(t *testing.T) {
	var seen atomic.Value
	server := newServer(t, http.StatusOK, `[
		{"id":1,"englishName":"Guru Nanak","punjabiName":"ਗੁਰੂ ਨਾਨਕ","birthYear":1469,"deathYear":1539,
		 "oneLiner":"","knownFor":"","tags":["founder"],"notableAssociates":[],"imageUrl":"abc123"}
	]`, &seen)

	figures, err := gallery.NewClient(server.URL+"/", server.Client()).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, figures, 1)
	assert.Equal(t, "Guru Nanak", figures[0].EnglishName)
	assert.Equal(t, 1539, *figures[0].DeathYear)
	assert.Equal(t, "/api/figures", seen.Load())
}

/*
TestClient_Search forwards the query and omits the "all" sentinel.
*/
func TestClient_Search(t *testing.T) {
	var seen atomic.Value
	server := newServer(t, http.StatusOK, `[]`, &seen)
	client := gallery.NewClient(server.URL, server.Client())

	figures, err := client.Search(context.Background(), figure.Query{Search: "singh", Tag: "warrior"})
	require.NoError(t, err)
	assert.NotNil(t, figures)
	assert.Equal(t, "/api/figures?q=singh&tag=warrior", seen.Load())

	_, err = client.Search(context.Background(), figure.Query{Tag: figure.AllTags})
	require.NoError(t, err)
	assert.Equal(t, "/api/figures", seen.Load())
}

/*
TestClient_Tags unwraps the data envelope.
*/
func TestClient_Tags(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"data":["founder","warrior"]}`, nil)

	tags, err := gallery.NewClient(server.URL, server.Client()).Tags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"founder", "warrior"}, tags)
}

/*
TestClient_Failures turns non-200 answers and network errors into FetchError.
*/
func TestClient_Failures(t *testing.T) {
	t.Run("server_error_body", func(t *testing.T) {
		server := newServer(t, http.StatusInternalServerError,
			`{"message":"Error fetching data from Google Sheets","error":"Google Sheets API error: 403 Forbidden (unauthorized)","code":"UPSTREAM_ERROR"}`, nil)

		_, err := gallery.NewClient(server.URL, server.Client()).Fetch(context.Background())

		var fetchErr *gallery.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
		assert.Equal(t, "Error fetching data from Google Sheets: Google Sheets API error: 403 Forbidden (unauthorized)", err.Error())
	})

	t.Run("plain_text_body", func(t *testing.T) {
		server := newServer(t, http.StatusBadGateway, `bad gateway`, nil)

		_, err := gallery.NewClient(server.URL, server.Client()).Fetch(context.Background())

		assert.EqualError(t, err, "failed to fetch figures: HTTP 502")
	})

	t.Run("method_not_allowed", func(t *testing.T) {
		server := newServer(t, http.StatusMethodNotAllowed, `{"message":"Method not allowed"}`, nil)

		_, err := gallery.NewClient(server.URL, server.Client()).Fetch(context.Background())

		assert.EqualError(t, err, "Method not allowed")
	})

	t.Run("unreachable", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `[]`, nil)
		client := gallery.NewClient(server.URL, server.Client())
		server.Close()

		_, err := client.Fetch(context.Background())

		var fetchErr *gallery.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 0, fetchErr.Status)
		assert.Contains(t, err.Error(), "failed to fetch figures")
	})
}
