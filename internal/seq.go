// Package internal holds small iterator helpers shared across packages.
package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Concat2 concatenates multiple dual-return iterators into a single iterator sequence.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Sorted iterates a map in ascending key order.
func Sorted[K cmp.Ordered, V any](m map[K]V) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
