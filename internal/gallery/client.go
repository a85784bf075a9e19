// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gallery is the client side of the figures directory.

It talks to the listing endpoint and holds the view state a presentation layer
renders from: the record set, the derived tag list, the current search and
tag selection, the expanded card, and the loading and error flags.

Flow:

  - [Client] fetches records from GET /api/figures.
  - [Store] keeps the last good record set and recomputes the visible list
    through figure.Apply after every mutation.
*/
package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/figures/internal/figure"
)

// DefaultTimeout bounds one listing request.
const DefaultTimeout = 15 * time.Second

// FetchError reports a network failure or a non-200 answer from the listing endpoint.
// Status is 0 when no response was received.
type FetchError struct {
	Status  int
	Message string
	Detail  string
	Cause   error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status == 0 && e.Cause != nil:
		return fmt.Sprintf("failed to fetch figures: %v", e.Cause)
	case e.Message != "" && e.Detail != "" && e.Detail != e.Message:
		return e.Message + ": " + e.Detail
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("failed to fetch figures: HTTP %d", e.Status)
	}
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Client reads the listing endpoint of a figures server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the server at baseURL. A nil httpClient gets
// one with [DefaultTimeout].
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Fetch returns every figure in provider order.
func (client *Client) Fetch(ctx context.Context) ([]figure.Figure, error) {
	return client.Search(ctx, figure.Query{})
}

// Search lets the server run the filter pipeline.
func (client *Client) Search(ctx context.Context, q figure.Query) ([]figure.Figure, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Tag != "" && q.Tag != figure.AllTags {
		params.Set("tag", q.Tag)
	}

	var figures []figure.Figure
	if err := client.get(ctx, "/api/figures", params, &figures); err != nil {
		return nil, err
	}
	if figures == nil {
		figures = []figure.Figure{}
	}
	return figures, nil
}

// Tags returns the server's distinct tag list.
func (client *Client) Tags(ctx context.Context) ([]string, error) {
	var envelope struct {
		Data []string `json:"data"`
	}
	if err := client.get(ctx, "/api/figures/tags", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []string{}, nil
	}
	return envelope.Data, nil
}

func (client *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := client.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Cause: err}
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return &FetchError{Cause: err}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return failure(response)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return &FetchError{Status: response.StatusCode, Message: "invalid response body", Cause: err}
	}
	return nil
}

// failure builds a FetchError from an error response, reading the
// {message, error} body when the server sent one.
func failure(response *http.Response) *FetchError {
	fetchErr := &FetchError{Status: response.StatusCode}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil {
		fetchErr.Message = body.Message
		fetchErr.Detail = body.Error
	}
	return fetchErr
}
