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
	"cmp"
	"fmt"
	"iter"
	"math"

	"github.com/samplekit/samplekit/internal"
)

// PriorityUnion merges partition-local PrioritySketch results into a single
// top-k sample. This is the distributed half of the algorithm: each worker
// builds a sketch over its own partition, and the union folds the sketches
// together on the collector.
//
// The default merge compares slots rank by rank across sketches, keeping the
// higher priority at each rank. This reproduces the reference distributed
// algorithm exactly, but a rank has only partition-local meaning, so the
// merged result can differ from the true global top-k when one partition's
// candidates dominate. WithExactMerge switches to concatenating the retained
// candidates and re-selecting the k globally highest priorities.
//
// Both merge rules are commutative and associative: folding partition
// results in any order yields the same sample.
type PriorityUnion[T any] struct {
	k     int
	n     int64
	exact bool
	slots []slot[T]
}

// UnionOption configures a PriorityUnion.
type UnionOption func(*unionConfig)

type unionConfig struct {
	exactMerge bool
}

// WithExactMerge selects the concatenate-and-reselect merge rule, producing
// the true global top-k of all retained candidates instead of the rank-wise
// merge of the reference algorithm.
func WithExactMerge() UnionOption {
	return func(c *unionConfig) {
		c.exactMerge = true
	}
}

// NewPriorityUnion creates a union over sketches of the given k.
func NewPriorityUnion[T any](k int, opts ...UnionOption) (*PriorityUnion[T], error) {
	if k < 0 {
		return nil, ErrNegativeK
	}

	cfg := &unionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	slots := make([]slot[T], k)
	for i := range slots {
		slots[i].priority = math.Inf(-1)
	}

	return &PriorityUnion[T]{
		k:     k,
		exact: cfg.exactMerge,
		slots: slots,
	}, nil
}

// UpdateSketch folds a partition result into the union. The sketch must have
// been built with the same k as the union.
func (u *PriorityUnion[T]) UpdateSketch(sketch *PrioritySketch[T]) error {
	if sketch == nil {
		return nil
	}
	if sketch.K() != u.k {
		return fmt.Errorf("%w: union k=%d, sketch k=%d", ErrKMismatch, u.k, sketch.K())
	}

	if u.exact {
		u.mergeExact(sketch)
	} else {
		u.mergeRankWise(sketch)
	}
	u.n += sketch.n
	return nil
}

func (u *PriorityUnion[T]) mergeRankWise(sketch *PrioritySketch[T]) {
	for i := range u.slots {
		if u.slots[i].priority < sketch.slots[i].priority {
			u.slots[i] = sketch.slots[i]
		}
	}
}

func (u *PriorityUnion[T]) mergeExact(sketch *PrioritySketch[T]) {
	cands := make([]slot[T], 0, len(u.slots)+len(sketch.slots))
	for _, sl := range u.slots {
		if !math.IsInf(sl.priority, -1) {
			cands = append(cands, sl)
		}
	}
	for _, sl := range sketch.slots {
		if !math.IsInf(sl.priority, -1) {
			cands = append(cands, sl)
		}
	}

	if len(cands) > u.k {
		// Partition the candidates so the k highest priorities come first.
		internal.QuickSelectFunc(cands, 0, len(cands)-1, u.k-1, func(a, b slot[T]) int {
			return cmp.Compare(b.priority, a.priority)
		})
		cands = cands[:u.k]
	}

	for i := range u.slots {
		u.slots[i] = slot[T]{priority: math.Inf(-1)}
	}
	for _, c := range cands {
		u.insert(c)
	}
}

// insert is the same swap-and-carry slot scan the sketch uses, keeping the
// union's slots ordered by descending priority.
func (u *PriorityUnion[T]) insert(cand slot[T]) {
	for i := range u.slots {
		if u.slots[i].priority < cand.priority {
			u.slots[i], cand = cand, u.slots[i]
		}
	}
}

// K returns the union's sample size.
func (u *PriorityUnion[T]) K() int { return u.k }

// N returns the total number of eligible items offered across all folded
// sketches.
func (u *PriorityUnion[T]) N() int64 { return u.n }

// IsEmpty returns true if no folded sketch had seen an eligible item.
func (u *PriorityUnion[T]) IsEmpty() bool { return u.n == 0 }

// NumSamples returns the number of items in the merged sample.
func (u *PriorityUnion[T]) NumSamples() int {
	for i, sl := range u.slots {
		if math.IsInf(sl.priority, -1) {
			return i
		}
	}
	return u.k
}

// Samples returns a copy of the merged sample, highest priority first.
func (u *PriorityUnion[T]) Samples() []T {
	num := u.NumSamples()
	result := make([]T, num)
	for i := 0; i < num; i++ {
		result[i] = u.slots[i].item
	}
	return result
}

// All returns an iterator over the merged sample and its priorities,
// highest priority first.
func (u *PriorityUnion[T]) All() iter.Seq[Sample[T]] {
	return func(yield func(Sample[T]) bool) {
		for _, sl := range u.slots {
			if math.IsInf(sl.priority, -1) {
				return
			}
			if !yield(Sample[T]{Item: sl.item, Priority: sl.priority}) {
				return
			}
		}
	}
}

// Reset clears the union while preserving k and the merge rule.
func (u *PriorityUnion[T]) Reset() {
	u.n = 0
	for i := range u.slots {
		u.slots[i] = slot[T]{priority: math.Inf(-1)}
	}
}
