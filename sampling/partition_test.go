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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionByKey(t *testing.T) {
	keyOf := func(v int) string { return fmt.Sprintf("key-%d", v) }

	t.Run("invalid partition count", func(t *testing.T) {
		_, err := PartitionByKey([]int{1, 2, 3}, 0, keyOf)
		assert.ErrorContains(t, err, "numPartitions must be positive")

		_, err = PartitionByKey([]int{1, 2, 3}, -4, keyOf)
		assert.ErrorContains(t, err, "numPartitions must be positive")
	})

	t.Run("partitions are disjoint and complete", func(t *testing.T) {
		items := make([]int, 1000)
		for i := range items {
			items[i] = i
		}

		partitions, err := PartitionByKey(items, 7, keyOf)
		assert.NoError(t, err)
		assert.Len(t, partitions, 7)

		seen := map[int]int{}
		for _, part := range partitions {
			for _, v := range part {
				seen[v]++
			}
		}
		assert.Len(t, seen, len(items))
		for v, count := range seen {
			assert.Equal(t, 1, count, "item %d assigned %d times", v, count)
		}
	})

	t.Run("assignment is stable across calls", func(t *testing.T) {
		items := []int{5, 17, 42, 99, 256, 1024}

		first, err := PartitionByKey(items, 4, keyOf)
		assert.NoError(t, err)
		second, err := PartitionByKey(items, 4, keyOf)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("input order is preserved within a partition", func(t *testing.T) {
		items := make([]int, 200)
		for i := range items {
			items[i] = i
		}

		partitions, err := PartitionByKey(items, 3, keyOf)
		assert.NoError(t, err)
		for _, part := range partitions {
			for i := 1; i < len(part); i++ {
				assert.Less(t, part[i-1], part[i])
			}
		}
	})
}

func TestSeedFromLabel(t *testing.T) {
	assert.Equal(t, SeedFromLabel("experiment-7"), SeedFromLabel("experiment-7"))
	assert.NotEqual(t, SeedFromLabel("experiment-7"), SeedFromLabel("experiment-8"))
}

func TestPartitionAndSamplePipeline(t *testing.T) {
	items := make([]weightedID, 500)
	for i := range items {
		items[i] = weightedID{id: i, weight: float64(i%9 + 1)}
	}

	partitions, err := PartitionByKey(items, 8, func(r weightedID) string {
		return fmt.Sprintf("%d", r.id)
	})
	assert.NoError(t, err)

	seed := SeedFromLabel("pipeline-test")
	first, err := SampleWithoutReplacement(partitions, weightOfID, 12, seed)
	assert.NoError(t, err)
	assert.Len(t, first, 12)

	second, err := SampleWithoutReplacement(partitions, weightOfID, 12, seed)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
