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

	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

const partitionHashSeed = uint64(9001)

// PartitionByKey splits items into numPartitions disjoint partitions by
// hashing each item's key. The assignment depends only on the key, so the
// same items partition the same way on every run, which keeps the seeded
// sampling reproducible end to end. Within a partition, items keep their
// input order.
//
// Partitioning is otherwise the caller's concern; this is a convenience for
// callers without an existing partitioning scheme.
func PartitionByKey[T any](items []T, numPartitions int, keyOf func(T) string) ([][]T, error) {
	if numPartitions <= 0 {
		return nil, errors.New("numPartitions must be positive")
	}

	partitions := make([][]T, numPartitions)
	for _, item := range items {
		h := murmur3.SeedStringSum64(partitionHashSeed, keyOf(item))
		idx := int(h % uint64(numPartitions))
		partitions[idx] = append(partitions[idx], item)
	}
	return partitions, nil
}

// SeedFromLabel derives a deterministic sampling seed from a label such as a
// run or experiment name.
func SeedFromLabel(label string) int64 {
	return int64(xxhash.Sum64String(label))
}
