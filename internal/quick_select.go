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

package internal

// QuickSelectFunc partitions arr[lo..hi] in place around its pivot-th
// element under the given comparator and returns that element. Afterwards
// every element at an index <= pivot compares less-than-or-equal to every
// element at an index > pivot; no further order is guaranteed. The exact
// merge of priority samples uses this with a descending comparator to pull
// the k highest priorities to the front.
func QuickSelectFunc[T any](arr []T, lo int, hi int, pivot int, compare func(a, b T) int) T {
	for hi > lo {
		j := partitionFunc(arr, lo, hi, compare)
		if j == pivot {
			return arr[pivot]
		}
		if j > pivot {
			hi = j - 1
		} else {
			lo = j + 1
		}
	}
	return arr[pivot]
}

func partitionFunc[T any](arr []T, lo int, hi int, compare func(a, b T) int) int {
	i := lo
	j := hi + 1
	v := arr[lo]
	for {
		for compare(arr[i+1], v) < 0 {
			i++
			if i == hi {
				break
			}
		}
		i++
		for compare(v, arr[j-1]) < 0 {
			j--
			if j == lo {
				break
			}
		}
		j--
		if i >= j {
			break
		}
		arr[i], arr[j] = arr[j], arr[i]
	}
	arr[lo], arr[j] = arr[j], arr[lo]
	return j
}
