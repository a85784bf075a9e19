// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"context"
	"errors"
	"log/slog"
)

// ErrDiagnosticsUnsupported is returned by [Service.Diagnose] when the repository cannot self-report.
var ErrDiagnosticsUnsupported = errors.New("figure: repository does not support diagnostics")

// Service is the figures provider. Every call reads the backend afresh.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// FetchAll returns every row normalized, in sheet order, with IDs 1..n.
//
// The first backend failure is returned as-is; there is no retry and no
// partial result.
func (service *Service) FetchAll(context context.Context) ([]Figure, error) {
	rows, err := service.repo.FetchRows(context)
	if err != nil {
		service.logger.WarnContext(context, "sheet_fetch_failed",
			slog.String("kind", string(KindOf(err))),
			slog.Any("error", err),
		)
		return nil, err
	}

	figures := make([]Figure, len(rows))
	shortRows := 0

	for i, row := range rows {
		if len(row) < ColumnCount {
			shortRows++
			service.logger.DebugContext(context, "sheet_row_short",
				slog.Int("row", i+1),
				slog.Int("cells", len(row)),
			)
		}
		figures[i] = Normalize(row, i+1)
	}

	service.logger.InfoContext(context, "sheet_fetch_completed",
		slog.Int("rows", len(figures)),
		slog.Int("short_rows", shortRows),
	)
	return figures, nil
}

// Search fetches all figures and runs them through the filter/sort pipeline.
// An identity query keeps provider order.
func (service *Service) Search(context context.Context, q Query) ([]Figure, error) {
	figures, err := service.FetchAll(context)
	if err != nil {
		return nil, err
	}
	if q.IsIdentity() {
		return figures, nil
	}
	return ApplyQuery(figures, q), nil
}

// Tags fetches all figures and returns their distinct tags, sorted.
func (service *Service) Tags(context context.Context) ([]string, error) {
	figures, err := service.FetchAll(context)
	if err != nil {
		return nil, err
	}
	return DistinctTags(figures), nil
}

// Diagnose delegates to the repository when it implements [Diagnoser].
func (service *Service) Diagnose(context context.Context) (Diagnostics, error) {
	diagnoser, ok := service.repo.(Diagnoser)
	if !ok {
		return Diagnostics{}, ErrDiagnosticsUnsupported
	}
	return diagnoser.Diagnose(context), nil
}
