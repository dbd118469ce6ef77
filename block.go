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

import "fmt"

const noBlock = -1

// blockPool is a fixed array of equal-sized byte blocks with a
// free/used bitmap. All content access is the caller's responsibility
// to guard (see the per-inode locks in tfs.go); blockPool itself adds
// no locking of its own.
type blockPool struct {
	blockSize int
	storage   []byte
	used      bitmap
}

func newBlockPool(count, blockSize int) *blockPool {
	return &blockPool{
		blockSize: blockSize,
		storage:   make([]byte, count*blockSize),
		used:      newBitmap(count),
	}
}

// alloc returns the index of a newly-allocated block, or noBlock if
// the pool is full.
func (p *blockPool) alloc() int {
	idx, ok := p.used.alloc()
	if !ok {
		return noBlock
	}
	return idx
}

// free releases a previously allocated block index.
func (p *blockPool) free(i int) {
	p.used.clear(i)
}

// get returns the byte region backing block i. Calling get with an
// out-of-range index is a programming error in the core and aborts the
// process, matching spec.md §4.1. Callers reach get for a block they
// themselves allocated or read from an inode's DataBlock field under
// the metadata mutex or that inode's lock, so get does not re-check the allocation
// bitmap here: doing so would mean reading bit state shared with other
// blocks' alloc/free calls without the mutex held.
func (p *blockPool) get(i int) []byte {
	if i < 0 || i >= p.used.n {
		panic(fmt.Sprintf("tfs: get on out-of-range block %d", i))
	}

	start := i * p.blockSize
	return p.storage[start : start+p.blockSize]
}
