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

// Package sampling provides weighted sampling without replacement over
// partitioned data using exponential priorities (the A-ES algorithm).
//
// Each eligible record is assigned a random priority ln(U)/weight for
// U drawn uniformly from [0, 1); the k records with the highest priorities
// form the sample. Because priorities are computed independently per record,
// selection runs in a single pass per partition: each partition builds a
// PrioritySketch of its local top-k candidates, and the partition results
// are merged through a PriorityUnion into the final sample.
//
// SampleWithoutReplacement wires the two stages together for in-memory
// partitions; callers with streaming or remote partitions can drive the
// sketch and union directly.
package sampling

import "errors"

var (
	// ErrNegativeK is returned when a negative sample size is requested.
	ErrNegativeK = errors.New("k must be non-negative")

	// ErrKMismatch is returned when sketches with different k values are merged.
	ErrKMismatch = errors.New("sketch k does not match")
)

// WeightFunc extracts the sampling weight from a record. A returned error is
// treated as a data error and aborts the sampling operation; it is never
// skipped or retried.
type WeightFunc[T any] func(T) (float64, error)
