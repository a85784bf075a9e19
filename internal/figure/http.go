// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/figures/internal/platform/apperr"
	"github.com/taibuivan/figures/internal/platform/respond"
)

// FetchFailedMessage is the headline of every listing failure response.
const FetchFailedMessage = "Error fetching data from Google Sheets"

// Handler exposes the figures provider over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the listing routes. The router is expected to be
// scoped at /api/figures.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.MethodNotAllowed(MethodNotAllowed)
	router.Get("/", handler.listFigures)
	router.Get("/tags", handler.listTags)
}

// RegisterDebug mounts the diagnostics route. Callers only do this outside production.
func (handler *Handler) RegisterDebug(router chi.Router) {
	router.Get("/", handler.debug)
}

// MethodNotAllowed answers any non-GET request on a figures route.
func MethodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Allow", http.MethodGet)
	respond.Error(writer, request, apperr.MethodNotAllowed())
}

// listFigures writes the figure list as a bare JSON array.
//
// # Query Parameters
//   - q: case-insensitive substring of either name.
//   - tag: tag to filter by; "all" or absent disables the tag filter.
func (handler *Handler) listFigures(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	q := Query{
		Search: params.Get("q"),
		Tag:    strings.TrimSpace(params.Get("tag")),
	}

	figures, err := handler.service.Search(request.Context(), q)
	if err != nil {
		respond.Error(writer, request, ToAppError(err))
		return
	}
	respond.Raw(writer, figures)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.Tags(request.Context())
	if err != nil {
		respond.Error(writer, request, ToAppError(err))
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) debug(writer http.ResponseWriter, request *http.Request) {
	diagnostics, err := handler.service.Diagnose(request.Context())
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	respond.Raw(writer, diagnostics)
}

// ToAppError maps a provider failure to a 500 [apperr.AppError] whose Detail
// carries the failure message. Unknown errors keep the same headline.
func ToAppError(err error) *apperr.AppError {
	code := "UPSTREAM_ERROR"
	switch KindOf(err) {
	case KindConfiguration:
		code = "CONFIGURATION_ERROR"
	case KindEmptyData:
		code = "EMPTY_DATA"
	}
	return apperr.Dependency(code, FetchFailedMessage, err)
}
