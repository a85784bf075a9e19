// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import "context"

// Repository yields the raw data rows of the spreadsheet, header excluded.
//
// Implementations fail with [ConfigurationError], [UpstreamError] or
// [EmptyDataError]; they never return partial rows.
type Repository interface {
	FetchRows(context context.Context) ([][]string, error)
}

// Diagnoser is implemented by repositories that can report on their own
// configuration and reachability.
type Diagnoser interface {
	Diagnose(context context.Context) Diagnostics
}

// Diagnostics describes the backend configuration and a one-cell probe.
// Secrets only ever appear masked.
type Diagnostics struct {
	Env   EnvDiagnostics   `json:"env"`
	Probe *ProbeDiagnostic `json:"test,omitempty"`
}

// EnvDiagnostics reports presence and masked previews of the backend settings.
type EnvDiagnostics struct {
	HasAPIKey      bool    `json:"hasApiKey"`
	HasSheetID     bool    `json:"hasSheetId"`
	APIKeyLength   int     `json:"apiKeyLength"`
	SheetIDLength  int     `json:"sheetIdLength"`
	APIKeyPreview  *string `json:"apiKeyPreview"`
	SheetIDPreview *string `json:"sheetIdPreview"`
}

// ProbeDiagnostic is the outcome of reading the first cell of the sheet.
type ProbeDiagnostic struct {
	URL        string  `json:"url"`
	OK         bool    `json:"ok"`
	Status     int     `json:"status"`
	StatusText string  `json:"statusText"`
	HasValues  bool    `json:"hasValues"`
	FirstCell  *string `json:"firstCell"`
	Error      string  `json:"error,omitempty"`
}
