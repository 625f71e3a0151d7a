/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sampling

import (
	"errors"
	"iter"
	"math"
	"math/rand"
)

// PrioritySketch maintains the k highest-priority records seen in a single
// pass over a stream of weighted items.
//
// Each eligible item (weight > 0) draws priority ln(U)/weight from the
// sketch's random source. The k items with the highest priorities are an
// A-ES weighted sample without replacement of the stream: a larger weight
// pulls the expected priority closer to zero and so biases the item toward
// inclusion.
//
// The sketch stores exactly k slots, mutated in place and never resized.
// Unfilled slots carry priority -Inf so any real candidate displaces them.
// The random source is supplied by the caller at construction; two sketches
// built with identically seeded sources over the same stream produce
// identical samples.
type PrioritySketch[T any] struct {
	k     int
	n     int64 // eligible items offered
	rng   *rand.Rand
	slots []slot[T]
}

type slot[T any] struct {
	priority float64
	item     T
}

// NewPrioritySketch creates a sketch retaining at most k items, drawing
// priorities from rng. k may be zero, in which case the sketch accepts
// updates but retains nothing.
func NewPrioritySketch[T any](k int, rng *rand.Rand) (*PrioritySketch[T], error) {
	if k < 0 {
		return nil, ErrNegativeK
	}
	if rng == nil {
		return nil, errors.New("rng must not be nil")
	}

	slots := make([]slot[T], k)
	for i := range slots {
		slots[i].priority = math.Inf(-1)
	}

	return &PrioritySketch[T]{
		k:     k,
		rng:   rng,
		slots: slots,
	}, nil
}

// Update offers an item to the sketch. Items with weight <= 0 (or NaN) are
// ineligible and skipped without consuming randomness; they never appear in
// the sample.
func (s *PrioritySketch[T]) Update(item T, weight float64) {
	if !(weight > 0) {
		return
	}
	s.n++

	// A draw of exactly 0 yields a -Inf priority, which never displaces a
	// slot; the item simply loses.
	s.insert(math.Log(s.rng.Float64())/weight, item)
}

// insert competes a candidate against every slot in order. A winning
// candidate swaps in and the displaced pair keeps competing for the
// remaining slots, so only the overall minimum is dropped and the slot
// array stays ordered by descending priority.
func (s *PrioritySketch[T]) insert(priority float64, item T) {
	cand := slot[T]{priority: priority, item: item}
	for i := range s.slots {
		if s.slots[i].priority < cand.priority {
			s.slots[i], cand = cand, s.slots[i]
		}
	}
}

// Merge folds another sketch's retained candidates into this one by
// comparing slots rank by rank and keeping the higher priority at each rank.
// The rule is commutative and associative, so partition results may be
// combined in any order with an identical outcome.
//
// Note: rank-wise merging matches the reference distributed algorithm but is
// not a true global top-k across many inputs; PriorityUnion with
// WithExactMerge provides the re-selecting variant.
func (s *PrioritySketch[T]) Merge(other *PrioritySketch[T]) error {
	if other == nil {
		return nil
	}
	if other.k != s.k {
		return ErrKMismatch
	}

	for i := range s.slots {
		if s.slots[i].priority < other.slots[i].priority {
			s.slots[i] = other.slots[i]
		}
	}
	s.n += other.n
	return nil
}

// K returns the configured maximum sample size.
func (s *PrioritySketch[T]) K() int { return s.k }

// N returns the number of eligible items offered to the sketch.
func (s *PrioritySketch[T]) N() int64 { return s.n }

// IsEmpty returns true if no eligible item has been offered.
func (s *PrioritySketch[T]) IsEmpty() bool { return s.n == 0 }

// NumSamples returns the number of items currently retained.
func (s *PrioritySketch[T]) NumSamples() int {
	// Slots are ordered by descending priority; unfilled slots sink to the end.
	for i, sl := range s.slots {
		if math.IsInf(sl.priority, -1) {
			return i
		}
	}
	return s.k
}

// Samples returns a copy of the retained items, highest priority first.
func (s *PrioritySketch[T]) Samples() []T {
	num := s.NumSamples()
	result := make([]T, num)
	for i := 0; i < num; i++ {
		result[i] = s.slots[i].item
	}
	return result
}

// Sample pairs a retained item with the priority it drew.
type Sample[T any] struct {
	Item     T
	Priority float64
}

// All returns an iterator over the retained items and their priorities,
// highest priority first.
func (s *PrioritySketch[T]) All() iter.Seq[Sample[T]] {
	return func(yield func(Sample[T]) bool) {
		for _, sl := range s.slots {
			if math.IsInf(sl.priority, -1) {
				return
			}
			if !yield(Sample[T]{Item: sl.item, Priority: sl.priority}) {
				return
			}
		}
	}
}

// Reset clears the sketch while preserving k and the random source.
func (s *PrioritySketch[T]) Reset() {
	s.n = 0
	for i := range s.slots {
		s.slots[i] = slot[T]{priority: math.Inf(-1)}
	}
}
