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

import (
	"testing"

	. "github.com/jacobsa/ogletest"
)

func TestBlockPool(t *testing.T) { RunTests(t) }

type BlockPoolTest struct {
	pool *blockPool
}

func init() { RegisterTestSuite(&BlockPoolTest{}) }

func (t *BlockPoolTest) SetUp(ti *TestInfo) {
	t.pool = newBlockPool(4, 8)
}

func (t *BlockPoolTest) AllocatedBlocksAreIndependent() {
	a := t.pool.alloc()
	b := t.pool.alloc()
	AssertNe(noBlock, a)
	AssertNe(noBlock, b)
	ExpectNe(a, b)

	copy(t.pool.get(a), []byte("aaaaaaaa"))
	copy(t.pool.get(b), []byte("bbbbbbbb"))

	ExpectEq("aaaaaaaa", string(t.pool.get(a)))
	ExpectEq("bbbbbbbb", string(t.pool.get(b)))
}

func (t *BlockPoolTest) ExhaustionReturnsNoBlock() {
	for i := 0; i < 4; i++ {
		AssertNe(noBlock, t.pool.alloc())
	}
	ExpectEq(noBlock, t.pool.alloc())
}

func (t *BlockPoolTest) FreeAllowsReuse() {
	a := t.pool.alloc()
	t.pool.free(a)

	for i := 0; i < 4; i++ {
		AssertNe(noBlock, t.pool.alloc())
	}
}

func (t *BlockPoolTest) GetPanicsOnOutOfRangeIndex() {
	defer func() {
		ExpectNe(nil, recover())
	}()
	t.pool.get(4)
}
