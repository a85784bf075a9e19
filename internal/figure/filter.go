// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/figures/pkg/pointer"
	"github.com/taibuivan/figures/pkg/slice"
)

// # Filter / Sort Pipeline

// Query is the user selection the pipeline is evaluated against.
type Query struct {
	// Search is matched as a case-insensitive substring of either name.
	Search string
	// Tag is a tag to match case-insensitively, or "" / [AllTags] for no filtering.
	Tag string
}

// IsIdentity reports whether q filters nothing.
func (q Query) IsIdentity() bool {
	return q.Search == "" && isAllTags(q.Tag)
}

// Apply returns the records matching both the search and the tag predicate,
// ordered ascending by death year with nil treated as 0.
//
// The sort is stable and the input slice is never modified, so Apply is safe
// to call on every keystroke.
func Apply(records []Figure, search, selectedTag string) []Figure {
	needle := fold(search)
	filterByTag := !isAllTags(selectedTag)

	matched := slice.Filter(records, func(f Figure) bool {
		if needle != "" && !strings.Contains(fold(f.EnglishName), needle) && !strings.Contains(fold(f.PunjabiName), needle) {
			return false
		}
		return !filterByTag || f.HasTag(selectedTag)
	})
	if matched == nil {
		return []Figure{}
	}

	slices.SortStableFunc(matched, func(a, b Figure) int {
		return cmp.Compare(pointer.Val(a.DeathYear), pointer.Val(b.DeathYear))
	})
	return matched
}

// ApplyQuery is [Apply] driven by a [Query].
func ApplyQuery(records []Figure, q Query) []Figure {
	return Apply(records, q.Search, q.Tag)
}

// # Tag Derivation

// DistinctTags collects every tag of every record, sorted for display.
// Comparison is exact: "Warrior" and "warrior" are both kept.
func DistinctTags(records []Figure) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, record := range records {
		for _, tag := range record.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	slices.Sort(tags)
	return tags
}

// isAllTags reports whether tag is the "no filtering" selection.
func isAllTags(tag string) bool {
	return tag == "" || tag == AllTags
}

// fold case-folds s for comparisons. A Caser is stateful, so one is built per call.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
