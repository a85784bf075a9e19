// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates request correlation identifiers.

Version 7 values are used so that IDs sort by creation time, which keeps log
lines for consecutive requests adjacent when sorted by request_id.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string. When the time-ordered generator fails it
// falls back to a random v4 value rather than failing the request.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
