// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gallery

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/taibuivan/figures/internal/figure"
)

// EmptyStateMessage is shown when the filters exclude every record.
const EmptyStateMessage = "No historical figures found matching your criteria."

// ErrSuperseded is returned by [Store.Refresh] when a newer refresh started
// before this one finished. Its result was discarded.
var ErrSuperseded = errors.New("gallery: refresh superseded by a newer one")

// Fetcher yields the full record set. [*Client] satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) ([]figure.Figure, error)
}

// View is a consistent copy of the store state.
type View struct {
	Records     []figure.Figure
	Visible     []figure.Figure
	Tags        []string
	Search      string
	SelectedTag string
	Expanded    *int
	Loading     bool
	Err         string
}

// Empty reports whether the filters exclude every record. A failed first load
// is an error, not an empty result.
func (view View) Empty() bool {
	return !view.Loading && len(view.Visible) == 0 && (view.Err == "" || len(view.Records) > 0)
}

// IsExpanded reports whether the card with id is expanded.
func (view View) IsExpanded(id int) bool {
	return view.Expanded != nil && *view.Expanded == id
}

// Store holds the view state and applies every mutation under one lock.
//
// # Last fetch wins
//
// Each Refresh takes a new generation number. When it completes, its result is
// applied only if no newer Refresh has started since, so a slow response can
// never overwrite a newer one. A failed Refresh keeps the previous records.
type Store struct {
	fetcher Fetcher

	mu         sync.Mutex
	generation uint64
	records    []figure.Figure
	tags       []string
	search     string
	tag        string
	expanded   *int
	loading    bool
	lastErr    string
	visible    []figure.Figure
}

func NewStore(fetcher Fetcher) *Store {
	return &Store{
		fetcher: fetcher,
		records: []figure.Figure{},
		tags:    []string{},
		tag:     figure.AllTags,
		visible: []figure.Figure{},
	}
}

// # Mutations

// SetSearch replaces the search text.
func (store *Store) SetSearch(search string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.search = search
	store.recompute()
}

// SelectTag selects a tag. "" resets to [figure.AllTags].
func (store *Store) SelectTag(tag string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if tag == "" {
		tag = figure.AllTags
	}
	store.tag = tag
	store.recompute()
}

// Toggle expands the card with id, or collapses it when it is already expanded.
func (store *Store) Toggle(id int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.expanded != nil && *store.expanded == id {
		store.expanded = nil
	} else {
		store.expanded = &id
	}
	store.recompute()
}

// Refresh fetches a fresh record set and replaces the current one atomically.
//
// On failure the previous records stay in place and the error text is kept
// for display. A result overtaken by a newer Refresh returns [ErrSuperseded].
func (store *Store) Refresh(ctx context.Context) error {
	store.mu.Lock()
	store.generation++
	generation := store.generation
	store.loading = true
	store.mu.Unlock()

	records, err := store.fetcher.Fetch(ctx)

	store.mu.Lock()
	defer store.mu.Unlock()

	if generation != store.generation {
		return ErrSuperseded
	}
	store.loading = false

	if err != nil {
		store.lastErr = err.Error()
		return err
	}

	if records == nil {
		records = []figure.Figure{}
	}
	store.records = records
	store.tags = figure.DistinctTags(records)
	store.lastErr = ""
	store.recompute()
	return nil
}

// RefreshAsync runs Refresh in the background. The channel receives its
// result and is then closed.
func (store *Store) RefreshAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- store.Refresh(ctx)
	}()
	return done
}

// DismissError clears the displayed error.
func (store *Store) DismissError() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.lastErr = ""
}

// # Reads

// Snapshot returns a copy of the current view state.
func (store *Store) Snapshot() View {
	store.mu.Lock()
	defer store.mu.Unlock()

	view := View{
		Records:     slices.Clone(store.records),
		Visible:     slices.Clone(store.visible),
		Tags:        slices.Clone(store.tags),
		Search:      store.search,
		SelectedTag: store.tag,
		Loading:     store.loading,
		Err:         store.lastErr,
	}
	if store.expanded != nil {
		expanded := *store.expanded
		view.Expanded = &expanded
	}
	return view
}

// recompute runs the filter pipeline. Callers hold mu.
func (store *Store) recompute() {
	store.visible = figure.Apply(store.records, store.search, store.tag)
}
