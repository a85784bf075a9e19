// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Names of the two required backend settings, as reported in [ConfigurationError].
const (
	CredentialName = "GOOGLE_SHEETS_API_KEY"
	SheetIDName    = "GOOGLE_SHEET_ID"
)

const (
	// DefaultBaseURL is the Google Sheets v4 REST root.
	DefaultBaseURL = "https://sheets.googleapis.com/v4"
	// DefaultRange skips the header row and reads columns A through I.
	DefaultRange = "Sheet1!A2:I"

	// maxErrorBody caps how much of a failed response is kept for diagnostics.
	maxErrorBody = 4 << 10
)

// SheetsConfig is the backend configuration injected at construction.
type SheetsConfig struct {
	Credential string
	SheetID    string
	BaseURL    string
	Range      string
}

// HTTPDoer is the network layer used by [SheetsRepository]. *http.Client satisfies it.
type HTTPDoer interface {
	Do(request *http.Request) (*http.Response, error)
}

// SheetsRepository reads rows from the Google Sheets values API.
type SheetsRepository struct {
	config SheetsConfig
	client HTTPDoer
	logger *slog.Logger
}

// NewSheetsRepository builds a repository over client. Empty BaseURL and Range take their defaults.
func NewSheetsRepository(config SheetsConfig, client HTTPDoer, logger *slog.Logger) *SheetsRepository {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Range == "" {
		config.Range = DefaultRange
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetsRepository{config: config, client: client, logger: logger}
}

// # Row Retrieval

// FetchRows issues exactly one GET for the configured range.
func (repository *SheetsRepository) FetchRows(context context.Context) ([][]string, error) {
	if err := repository.checkConfig(); err != nil {
		return nil, err
	}

	payload, err := repository.get(context, repository.config.Range)
	if err != nil {
		return nil, err
	}

	if payload.Values == nil {
		return nil, ErrEmptyData
	}
	return payload.rows(), nil
}

// Configured reports a [ConfigurationError] when the credential or sheet id is missing.
func (repository *SheetsRepository) Configured(context.Context) error {
	return repository.checkConfig()
}

// checkConfig verifies credential then sheet id, before any request is built.
func (repository *SheetsRepository) checkConfig() error {
	if strings.TrimSpace(repository.config.Credential) == "" {
		return &ConfigurationError{Missing: CredentialName}
	}
	if strings.TrimSpace(repository.config.SheetID) == "" {
		return &ConfigurationError{Missing: SheetIDName}
	}
	return nil
}

// valuesURL renders the request URL for a range, with the credential as the key parameter.
func (repository *SheetsRepository) valuesURL(sheetRange string) string {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		strings.TrimRight(repository.config.BaseURL, "/"),
		url.PathEscape(repository.config.SheetID),
		url.PathEscape(sheetRange),
	)
	return endpoint + "?" + url.Values{"key": {repository.config.Credential}}.Encode()
}

func (repository *SheetsRepository) get(context context.Context, sheetRange string) (*valuesPayload, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, repository.valuesURL(sheetRange), nil)
	if err != nil {
		return nil, &UpstreamError{Reason: ReasonGeneric, Cause: err}
	}
	request.Header.Set("Accept", "application/json")

	response, err := repository.client.Do(request)
	if err != nil {
		return nil, &UpstreamError{Reason: ReasonGeneric, Cause: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, &UpstreamError{
			Status:     response.StatusCode,
			StatusText: statusText(response),
			Reason:     ReasonFor(response.StatusCode),
			Cause:      errors.New(string(bytes.TrimSpace(body))),
		}
	}

	var payload valuesPayload
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{
			Status:     response.StatusCode,
			StatusText: statusText(response),
			Reason:     ReasonGeneric,
			Cause:      fmt.Errorf("decode values payload: %w", err),
		}
	}
	return &payload, nil
}

// statusText strips the numeric prefix from response.Status ("403 Forbidden" -> "Forbidden").
func statusText(response *http.Response) string {
	text := strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(response.StatusCode)
	}
	return text
}

// # Diagnostics

// Diagnose reports configuration presence and, when both values are set,
// probes the first cell of the sheet. It never returns the raw credential.
func (repository *SheetsRepository) Diagnose(context context.Context) Diagnostics {
	credential := repository.config.Credential
	sheetID := repository.config.SheetID

	diagnostics := Diagnostics{Env: EnvDiagnostics{
		HasAPIKey:      credential != "",
		HasSheetID:     sheetID != "",
		APIKeyLength:   len(credential),
		SheetIDLength:  len(sheetID),
		APIKeyPreview:  mask(credential),
		SheetIDPreview: mask(sheetID),
	}}

	if repository.checkConfig() != nil {
		return diagnostics
	}

	probeRange := sheetName(repository.config.Range) + "!A1:A1"
	probe := &ProbeDiagnostic{
		URL: strings.ReplaceAll(repository.valuesURL(probeRange), url.QueryEscape(credential), "REDACTED"),
	}
	diagnostics.Probe = probe

	payload, err := repository.get(context, probeRange)
	if err != nil {
		probe.Error = err.Error()
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.Status != 0 {
			probe.Status = upstream.Status
			probe.StatusText = upstream.StatusText
			if body := upstream.Cause.Error(); body != "" {
				probe.Error = body
			}
		}
		return diagnostics
	}

	probe.OK = true
	probe.Status = http.StatusOK
	probe.StatusText = http.StatusText(http.StatusOK)
	probe.HasValues = payload.Values != nil
	if rows := payload.rows(); len(rows) > 0 && len(rows[0]) > 0 {
		first := rows[0][0]
		probe.FirstCell = &first
	}

	repository.logger.Debug("sheet_probe_completed", slog.Bool("has_values", probe.HasValues))
	return diagnostics
}

// mask keeps the first and last four characters of a secret.
func mask(secret string) *string {
	if secret == "" {
		return nil
	}
	if len(secret) <= 8 {
		masked := strings.Repeat("*", len(secret))
		return &masked
	}
	masked := secret[:4] + "..." + secret[len(secret)-4:]
	return &masked
}

// sheetName returns the tab part of an A1 range ("Sheet1!A2:I" -> "Sheet1").
func sheetName(sheetRange string) string {
	if name, _, found := strings.Cut(sheetRange, "!"); found && name != "" {
		return name
	}
	return "Sheet1"
}

// # Wire Format

// valuesPayload mirrors the values API response. Values is nil when the field is absent.
type valuesPayload struct {
	Values *[][]cellValue `json:"values"`
}

func (payload *valuesPayload) rows() [][]string {
	if payload.Values == nil {
		return [][]string{}
	}
	rows := make([][]string, len(*payload.Values))
	for i, raw := range *payload.Values {
		row := make([]string, len(raw))
		for j, value := range raw {
			row[j] = string(value)
		}
		rows[i] = row
	}
	return rows
}

// cellValue accepts any JSON scalar and keeps its text form. null becomes "".
type cellValue string

func (value *cellValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*value = ""
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*value = cellValue(text)
	default:
		*value = cellValue(data)
	}
	return nil
}
