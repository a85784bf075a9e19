// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Optional record fields (a birth year that may be unknown) are modelled as
pointers, so that "absent" encodes as JSON null rather than a zero.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
*/
package pointer

// To returns a pointer to the provided value (e.g. pointer.To(1469)).
func To[T any](v T) *T {
	return &v
}

// Val dereferences p. A nil p yields the zero value of T, which is how an
// unknown year takes part in ordering.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
