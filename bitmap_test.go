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

func TestBitmap(t *testing.T) { RunTests(t) }

type BitmapTest struct {
	b bitmap
}

func init() { RegisterTestSuite(&BitmapTest{}) }

func (t *BitmapTest) SetUp(ti *TestInfo) {
	t.b = newBitmap(5)
}

func (t *BitmapTest) StartsAllClear() {
	for i := 0; i < 5; i++ {
		ExpectFalse(t.b.get(i))
	}
}

func (t *BitmapTest) AllocReturnsEachIndexOnce() {
	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		idx, ok := t.b.alloc()
		AssertTrue(ok)
		ExpectFalse(seen[idx])
		seen[idx] = true
	}

	_, ok := t.b.alloc()
	ExpectFalse(ok)
}

func (t *BitmapTest) ClearMakesIndexAllocatableAgain() {
	idx, ok := t.b.alloc()
	AssertTrue(ok)

	for i := 0; i < 4; i++ {
		_, ok := t.b.alloc()
		AssertTrue(ok)
	}

	t.b.clear(idx)
	ExpectFalse(t.b.get(idx))

	got, ok := t.b.alloc()
	AssertTrue(ok)
	ExpectEq(idx, got)
}

func (t *BitmapTest) SetAndGet() {
	t.b.set(3)
	ExpectTrue(t.b.get(3))
	ExpectFalse(t.b.get(2))
	ExpectFalse(t.b.get(4))
}

// Regression test for the shared-word packing that made the bitmap
// layer worth a second look during the concurrency audit: 70 bits span
// two words, and allocation must still respect n rather than the
// word-rounded capacity.
func (t *BitmapTest) RespectsNNotWordBoundary() {
	b := newBitmap(70)
	for i := 0; i < 70; i++ {
		_, ok := b.alloc()
		AssertTrue(ok, "allocation should have succeeded")
	}
	_, ok := b.alloc()
	ExpectFalse(ok)
}
