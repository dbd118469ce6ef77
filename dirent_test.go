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

	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"
)

func TestDirTable(t *testing.T) { RunTests(t) }

type DirTableTest struct {
	blocks *blockPool
	inodes *inodeTable
	dirs   *dirTable
	root   *Inode
}

func init() { RegisterTestSuite(&DirTableTest{}) }

func (t *DirTableTest) SetUp(ti *TestInfo) {
	t.blocks = newBlockPool(4, direntSize*3)
	t.inodes = newInodeTable(4, t.blocks)
	t.dirs = newDirTable(t.blocks, t.inodes)

	inum := t.inodes.create(Directory)
	AssertNe(noInode, inum)
	t.root = t.inodes.get(inum)
	t.dirs.initEntries(t.root)
}

func (t *DirTableTest) EmptyDirectoryFindsNothing() {
	_, ok := t.dirs.find(t.root, "foo")
	ExpectFalse(ok)
}

func (t *DirTableTest) AddThenFindRoundTrips() {
	AssertEq(nil, t.dirs.add(t.root, "foo", 2))

	inum, ok := t.dirs.find(t.root, "foo")
	AssertTrue(ok)
	ExpectEq(2, inum)
}

func (t *DirTableTest) AddDuplicateNameFails() {
	AssertEq(nil, t.dirs.add(t.root, "foo", 2))
	err := t.dirs.add(t.root, "foo", 3)
	ExpectEq(ErrAlreadyExists, err)
}

func (t *DirTableTest) AddFailsWhenDirectoryIsFull() {
	AssertEq(nil, t.dirs.add(t.root, "a", 1))
	AssertEq(nil, t.dirs.add(t.root, "b", 1))
	AssertEq(nil, t.dirs.add(t.root, "c", 1))

	err := t.dirs.add(t.root, "d", 1)
	ExpectEq(ErrNoSpace, err)
}

func (t *DirTableTest) ClearRemovesEntry() {
	AssertEq(nil, t.dirs.add(t.root, "foo", 2))
	AssertEq(nil, t.dirs.clear(t.root, "foo"))

	_, ok := t.dirs.find(t.root, "foo")
	ExpectFalse(ok)
}

func (t *DirTableTest) ClearUnknownNameFails() {
	err := t.dirs.clear(t.root, "nope")
	ExpectEq(ErrNotFound, err)
}

func (t *DirTableTest) AddFillsSlotsInOrder() {
	AssertEq(nil, t.dirs.add(t.root, "a", 1))
	AssertEq(nil, t.dirs.add(t.root, "b", 2))
	AssertEq(nil, t.dirs.add(t.root, "c", 3))

	var names []string
	for i := 0; i < t.dirs.capacity(t.root); i++ {
		n, inum := decodeDirent(t.dirs.slot(t.root, i))
		if inum != emptyInum {
			names = append(names, n)
		}
	}
	ExpectThat(names, ElementsAre("a", "b", "c"))
}

func (t *DirTableTest) ClearedSlotIsReusable() {
	AssertEq(nil, t.dirs.add(t.root, "a", 1))
	AssertEq(nil, t.dirs.add(t.root, "b", 1))
	AssertEq(nil, t.dirs.add(t.root, "c", 1))
	AssertEq(nil, t.dirs.clear(t.root, "b"))
	AssertEq(nil, t.dirs.add(t.root, "d", 1))

	_, ok := t.dirs.find(t.root, "d")
	ExpectTrue(ok)
}
