// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query splits comma-separated values, as found in sheet cells
// ("founder, spiritual leader") and query strings.
package query

import "strings"

// StringSlice splits val on commas, trims each piece and drops empty ones.
// It returns nil when nothing remains.
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
