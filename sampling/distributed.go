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
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// SampleWithoutReplacement draws a weighted sample without replacement of at
// most k records from a partitioned dataset.
//
// Each partition is scanned once, concurrently with the others, by a
// PrioritySketch seeded with seed + partitionIndex. The per-partition seeding
// makes the result reproducible: the same partitions and seed always yield
// the same sample, and changing one partition's contents never perturbs
// another partition's randomness stream. Partition results are folded
// through a PriorityUnion (rank-wise merge by default; pass WithExactMerge
// for a true global top-k re-selection).
//
// Records whose weight is not strictly positive are excluded from candidacy.
// If fewer than k eligible records exist, the sample is correspondingly
// smaller. k == 0 and an empty partition set both return an empty sample
// immediately, without invoking weightOf on any record.
//
// An error from weightOf is a data error: it aborts the whole call and is
// returned wrapped with the partition index.
func SampleWithoutReplacement[T any](partitions [][]T, weightOf WeightFunc[T], k int, seed int64, opts ...UnionOption) ([]T, error) {
	if k < 0 {
		return nil, ErrNegativeK
	}
	if k == 0 || len(partitions) == 0 {
		return nil, nil
	}

	sketches := make([]*PrioritySketch[T], len(partitions))

	var g errgroup.Group
	for i, part := range partitions {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(i)))
			sketch, err := NewPrioritySketch[T](k, rng)
			if err != nil {
				return err
			}
			for _, rec := range part {
				w, err := weightOf(rec)
				if err != nil {
					return fmt.Errorf("partition %d: %w", i, err)
				}
				sketch.Update(rec, w)
			}
			sketches[i] = sketch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	union, err := NewPriorityUnion[T](k, opts...)
	if err != nil {
		return nil, err
	}
	for _, sketch := range sketches {
		if err := union.UpdateSketch(sketch); err != nil {
			return nil, err
		}
	}
	return union.Samples(), nil
}
