// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/figures/pkg/slug"
)

/*
TestFrom produces ASCII fragment identifiers.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Guru Nanak", "guru-nanak"},
		{"accents", "Bhāī Mardānā", "bhai-mardana"},
		{"punctuation", "  Banda Singh (Bahadur)! ", "banda-singh-bahadur"},
		{"gurmukhi_only", "ਗੁਰੂ ਨਾਨਕ", ""},
		{"digits", "Guru Har Rai 7th", "guru-har-rai-7th"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
