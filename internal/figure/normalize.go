// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"strconv"
	"strings"

	"github.com/taibuivan/figures/pkg/pointer"
	"github.com/taibuivan/figures/pkg/query"
)

// Normalize converts one raw spreadsheet row into a [Figure].
//
// The row may be shorter than [ColumnCount]; missing cells take their field
// default. Extra trailing cells are ignored. position becomes the ID and is
// expected to be the 1-based row position within the fetch.
func Normalize(row []string, position int) Figure {
	return Figure{
		ID:                position,
		EnglishName:       cell(row, ColEnglishName),
		PunjabiName:       cell(row, ColPunjabiName),
		BirthYear:         parseYear(cell(row, ColBirthYear)),
		DeathYear:         parseYear(cell(row, ColDeathYear)),
		OneLiner:          cell(row, ColOneLiner),
		KnownFor:          cell(row, ColKnownFor),
		Tags:              parseTagSet(cell(row, ColTags)),
		NotableAssociates: parseList(cell(row, ColNotableAssociates)),
		ImageURL:          strings.TrimSpace(cell(row, ColImageURL)),
	}
}

// cell returns the value at index, or "" when the row is too short.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// parseYear parses a whole base-10 integer. Anything else yields nil.
func parseYear(raw string) *int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return pointer.To(value)
}

// parseList splits a comma-separated cell, trimming pieces and dropping empties.
// The result is never nil so it always encodes as a JSON array.
func parseList(raw string) []string {
	items := query.StringSlice(raw)
	if items == nil {
		return []string{}
	}
	return items
}

// parseTagSet is parseList with duplicates removed, keeping the first occurrence.
func parseTagSet(raw string) []string {
	items := parseList(raw)
	seen := make(map[string]struct{}, len(items))

	set := items[:0]
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		set = append(set, item)
	}
	return set
}
