// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tfs

import "math/bits"

// bitmap is a fixed-size free/used bit vector. The zero value with n
// pre-allocated via newBitmap is ready to use; all bits start clear
// (free).
type bitmap struct {
	n     int
	words []uint64
}

func newBitmap(n int) bitmap {
	return bitmap{
		n:     n,
		words: make([]uint64, (n+63)/64),
	}
}

func (b *bitmap) get(i int) bool {
	return b.words[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func (b *bitmap) set(i int) {
	b.words[i/64] |= uint64(1) << uint(i%64)
}

func (b *bitmap) clear(i int) {
	b.words[i/64] &^= uint64(1) << uint(i%64)
}

// alloc scans for the first clear bit, sets it, and returns its index.
// It returns (-1, false) when every bit in range is set.
func (b *bitmap) alloc() (int, bool) {
	for w := 0; w < len(b.words); w++ {
		word := b.words[w]
		if word == ^uint64(0) {
			continue
		}

		// Find the first clear bit in this word.
		inv := ^word
		bit := bits.TrailingZeros64(inv)
		idx := w*64 + bit
		if idx >= b.n {
			continue
		}

		b.set(idx)
		return idx, true
	}

	return -1, false
}
