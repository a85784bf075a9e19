// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/figures/internal/figure"
)

// stubRepository returns fixed rows or a fixed error and counts calls.
type stubRepository struct {
	rows  [][]string
	err   error
	calls int
}

func (stub *stubRepository) FetchRows(context.Context) ([][]string, error) {
	stub.calls++
	return stub.rows, stub.err
}

func stubRows() [][]string {
	return [][]string{
		{"Banda Singh Bahadur", "ਬੰਦਾ ਸਿੰਘ ਬਹਾਦਰ", "1670", "1716", "", "", "Warrior, martyr", "", ""},
		{"Guru Nanak", "ਗੁਰੂ ਨਾਨਕ", "1469", "1539", "", "", "founder", "Bhai Lehna", "abc123"},
		{"Bhai Mardana"},
	}
}

/*
TestService_FetchAll assigns 1-based positions as IDs and logs short rows.
*/
func TestService_FetchAll(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	repo := &stubRepository{rows: stubRows()}

	figures, err := figure.NewService(repo, logger).FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, figures, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(figures))
	assert.Equal(t, "Bhai Mardana", figures[2].EnglishName)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, logs.String(), `"msg":"sheet_row_short"`)
	assert.Contains(t, logs.String(), `"msg":"sheet_fetch_completed"`)
}

/*
TestService_FetchAll_Error returns the provider failure untouched.
*/
func TestService_FetchAll_Error(t *testing.T) {
	repo := &stubRepository{err: &figure.ConfigurationError{Missing: figure.SheetIDName}}

	figures, err := figure.NewService(repo, nil).FetchAll(context.Background())

	assert.Nil(t, figures)
	assert.Equal(t, figure.KindConfiguration, figure.KindOf(err))
}

/*
TestService_Search keeps provider order for identity queries.
*/
func TestService_Search(t *testing.T) {
	service := figure.NewService(&stubRepository{rows: stubRows()}, nil)

	identity, err := service.Search(context.Background(), figure.Query{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(identity))

	sorted, err := service.Search(context.Background(), figure.Query{Search: "a"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids(sorted))

	tagged, err := service.Search(context.Background(), figure.Query{Tag: "WARRIOR"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(tagged))
}

/*
TestService_Tags returns the sorted distinct tag set.
*/
func TestService_Tags(t *testing.T) {
	tags, err := figure.NewService(&stubRepository{rows: stubRows()}, nil).Tags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Warrior", "founder", "martyr"}, tags)
}

/*
TestService_Diagnose requires a repository that can diagnose itself.
*/
func TestService_Diagnose(t *testing.T) {
	_, err := figure.NewService(&stubRepository{}, nil).Diagnose(context.Background())
	assert.ErrorIs(t, err, figure.ErrDiagnosticsUnsupported)

	repository := figure.NewSheetsRepository(figure.SheetsConfig{}, nil, nil)
	diagnostics, err := figure.NewService(repository, nil).Diagnose(context.Background())
	require.NoError(t, err)
	assert.False(t, diagnostics.Env.HasSheetID)
	assert.Nil(t, diagnostics.Probe)
}
