// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package batch partitions bulk-operation inputs into size-bounded chunks for
// the directory's batched APIs.
package batch

// DefaultCapacity is the directory's cap on elements per bulk request.
const DefaultCapacity = 100

// Split partitions items into ordered batches of at most capacity elements.
// Every batch except possibly the last holds exactly capacity elements, no
// batch is ever empty, and empty input yields zero batches. A non-positive
// capacity falls back to DefaultCapacity.
func Split[T any](items []T, capacity int) [][]T {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(items)+capacity-1)/capacity)
	for start := 0; start < len(items); start += capacity {
		end := start + capacity
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
