// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web renders the server-side figure gallery.

Every request builds a fresh [gallery.Store], applies the selection carried in
the query string (q, tag, expanded), refreshes it from the figures service and
renders the resulting view. A failed fetch renders an inline error banner.
*/
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/figures/internal/figure"
	"github.com/taibuivan/figures/internal/gallery"
	"github.com/taibuivan/figures/internal/platform/apperr"
	"github.com/taibuivan/figures/internal/platform/ctxutil"
	"github.com/taibuivan/figures/internal/platform/respond"
	"github.com/taibuivan/figures/pkg/slug"
)

//go:embed templates/gallery.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var galleryTemplate = template.Must(
	template.New("gallery.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/gallery.html"),
)

// Images expands stored image references into fetchable URLs.
type Images struct {
	// Host serves bare file identifiers, e.g. "drive.google.com".
	Host string
	// Placeholder is used when a record has no image.
	Placeholder string
}

// Resolve returns the URL for ref. Full http(s) URLs are kept as they are.
func (images Images) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return images.Placeholder
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	default:
		return "https://" + images.Host + "/uc?" + url.Values{"export": {"view"}, "id": {ref}}.Encode()
	}
}

// fetcherFunc adapts a function to [gallery.Fetcher].
type fetcherFunc func(ctx context.Context) ([]figure.Figure, error)

func (fn fetcherFunc) Fetch(ctx context.Context) ([]figure.Figure, error) { return fn(ctx) }

// Handler serves the gallery page and its static assets.
type Handler struct {
	fetcher gallery.Fetcher
	images  Images
}

// NewHandler builds the page handler. service.FetchAll feeds every render.
func NewHandler(service *figure.Service, images Images) *Handler {
	return &Handler{
		fetcher: fetcherFunc(service.FetchAll),
		images:  images,
	}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.render)
}

// Static serves the embedded assets. Mount it under /static/.
func Static() http.Handler {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets)))
}

// # Page Rendering

type card struct {
	figure.Figure
	Anchor    string
	ImageSrc  string
	Years     string
	Expanded  bool
	ToggleURL string
}

type page struct {
	Search       string
	SelectedTag  string
	Tags         []string
	Err          string
	Empty        bool
	EmptyMessage string
	Cards        []card
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	store := gallery.NewStore(handler.fetcher)
	store.SetSearch(params.Get("q"))
	store.SelectTag(strings.TrimSpace(params.Get("tag")))
	if id, err := strconv.Atoi(params.Get("expanded")); err == nil {
		store.Toggle(id)
	}

	if err := store.Refresh(request.Context()); err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "gallery_fetch_failed",
			slog.String("kind", string(figure.KindOf(err))),
			slog.Any("error", err),
		)
	}

	view := store.Snapshot()
	data := page{
		Search:       view.Search,
		SelectedTag:  view.SelectedTag,
		Tags:         view.Tags,
		Err:          view.Err,
		Empty:        view.Empty(),
		EmptyMessage: gallery.EmptyStateMessage,
		Cards:        make([]card, 0, len(view.Visible)),
	}
	if data.Err != "" {
		data.Err = figure.FetchFailedMessage + ": " + data.Err
	}

	for _, record := range view.Visible {
		data.Cards = append(data.Cards, card{
			Figure:    record,
			Anchor:    Anchor(record),
			ImageSrc:  handler.images.Resolve(record.ImageURL),
			Years:     Years(record),
			Expanded:  view.IsExpanded(record.ID),
			ToggleURL: toggleURL(view, record),
		})
	}

	var buffer bytes.Buffer
	if err := galleryTemplate.Execute(&buffer, data); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	_, _ = buffer.WriteTo(writer)
}

// Years renders "birth - death" with blanks for unknown years.
func Years(record figure.Figure) string {
	format := func(year *int) string {
		if year == nil {
			return ""
		}
		return strconv.Itoa(*year)
	}
	if record.BirthYear == nil && record.DeathYear == nil {
		return ""
	}
	return strings.TrimSpace(format(record.BirthYear) + " - " + format(record.DeathYear))
}

// Anchor is the fragment identifier of a card, e.g. "figure-1-guru-nanak".
func Anchor(record figure.Figure) string {
	anchor := "figure-" + strconv.Itoa(record.ID)
	if name := slug.From(record.EnglishName); name != "" {
		anchor += "-" + name
	}
	return anchor
}

// toggleURL links to the same selection with the card expanded, or collapsed
// when it already is.
func toggleURL(view gallery.View, record figure.Figure) string {
	params := url.Values{}
	if view.Search != "" {
		params.Set("q", view.Search)
	}
	if view.SelectedTag != "" && view.SelectedTag != figure.AllTags {
		params.Set("tag", view.SelectedTag)
	}
	if !view.IsExpanded(record.ID) {
		params.Set("expanded", strconv.Itoa(record.ID))
	}

	target := "/"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target + "#" + Anchor(record)
}
