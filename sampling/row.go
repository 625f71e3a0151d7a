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

	"golang.org/x/exp/constraints"
)

// Row is a loosely typed record, as produced by row-oriented decoders.
type Row map[string]any

// FieldWeight returns a WeightFunc reading the named field of a Row as the
// sampling weight. A missing field or a non-numeric value is a hard error:
// the weight column is part of the caller's data contract, so the failure is
// surfaced rather than skipped.
func FieldWeight(field string) WeightFunc[Row] {
	return func(r Row) (float64, error) {
		v, ok := r[field]
		if !ok {
			return 0, fmt.Errorf("weight field %q not found", field)
		}
		switch w := v.(type) {
		case float64:
			return w, nil
		case float32:
			return float64(w), nil
		case int:
			return float64(w), nil
		case int8:
			return float64(w), nil
		case int16:
			return float64(w), nil
		case int32:
			return float64(w), nil
		case int64:
			return float64(w), nil
		case uint:
			return float64(w), nil
		case uint8:
			return float64(w), nil
		case uint16:
			return float64(w), nil
		case uint32:
			return float64(w), nil
		case uint64:
			return float64(w), nil
		default:
			return 0, fmt.Errorf("weight field %q has non-numeric type %T", field, v)
		}
	}
}

// ValueWeight returns a WeightFunc for records that are their own weight,
// e.g. sampling a slice of counts proportionally to the counts themselves.
func ValueWeight[T constraints.Integer | constraints.Float]() WeightFunc[T] {
	return func(v T) (float64, error) {
		return float64(v), nil
	}
}
