// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package figure implements the historical figures catalogue.

A figure is one row of the backing spreadsheet, normalized into a stable
record shape. The package owns the whole read path:

  - Normalize: tolerant row-to-record conversion (never fails).
  - Service: the provider that fetches every row and maps it through Normalize.
  - Apply / DistinctTags: the pure filter, sort and tag derivation pipeline.
  - Handler: the read-only HTTP surface.

Nothing in this package mutates a [Figure] after construction.
*/
package figure

// # Sheet Layout

// Column positions inside a spreadsheet row (columns A through I).
const (
	ColEnglishName = iota
	ColPunjabiName
	ColBirthYear
	ColDeathYear
	ColOneLiner
	ColKnownFor
	ColTags
	ColNotableAssociates
	ColImageURL

	// ColumnCount is the number of cells a complete row carries.
	ColumnCount
)

// AllTags is the tag selector sentinel meaning "no tag filtering".
const AllTags = "all"

// # Record

// Figure is one normalized historical figure.
//
// BirthYear and DeathYear are nil when the source cell is absent or not a
// base-10 integer. Tags holds distinct trimmed members in first-seen order.
type Figure struct {
	ID                int      `json:"id"`
	EnglishName       string   `json:"englishName"`
	PunjabiName       string   `json:"punjabiName"`
	BirthYear         *int     `json:"birthYear"`
	DeathYear         *int     `json:"deathYear"`
	OneLiner          string   `json:"oneLiner"`
	KnownFor          string   `json:"knownFor"`
	Tags              []string `json:"tags"`
	NotableAssociates []string `json:"notableAssociates"`
	ImageURL          string   `json:"imageUrl"`
}

// HasTag reports whether f carries tag under case-insensitive comparison.
func (f Figure) HasTag(tag string) bool {
	folded := fold(tag)
	for _, member := range f.Tags {
		if fold(member) == folded {
			return true
		}
	}
	return false
}
