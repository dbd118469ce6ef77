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

// Kind is the type of an inode.
type Kind int

const (
	// Directory is the type of the single, fixed root directory inode.
	Directory Kind = iota
	// File is a regular file, capped at one block.
	File
	// Symlink is an inode whose body holds a null-terminated pathname.
	Symlink
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	case Symlink:
		return "symlink"
	default:
		return "unknown"
	}
}

const noInode = -1

// rootInum is the inumber of the single, permanent root directory
// inode. It is allocated during Init and never freed.
const rootInum = 0

// Inode is a metadata record. Byte content lives in the block pool;
// an Inode only names which block (if any) holds it.
type Inode struct {
	Kind      Kind
	Size      int
	DataBlock int
	HardLinks int
}

// inodeTable is a fixed array of inode records with a free/used
// bitmap. All methods assume the caller holds TFS.mu; inodeTable adds
// no locking of its own.
type inodeTable struct {
	blocks  *blockPool
	entries []Inode
	used    bitmap
}

func newInodeTable(count int, blocks *blockPool) *inodeTable {
	return &inodeTable{
		blocks:  blocks,
		entries: make([]Inode, count),
		used:    newBitmap(count),
	}
}

// create allocates an inode of the given kind and returns its inumber,
// or noInode if the table is full. A DIRECTORY inode also allocates
// its data block, whose previous contents are left as they are (Init
// marks the entries empty with dirTable.initEntries); the only
// directory ever created this way is the root, at Init time.
func (t *inodeTable) create(kind Kind) int {
	idx, ok := t.used.alloc()
	if !ok {
		return noInode
	}

	in := Inode{Kind: kind, DataBlock: noBlock}
	switch kind {
	case File, Symlink:
		in.HardLinks = 1
	case Directory:
		in.HardLinks = 0
		blk := t.blocks.alloc()
		if blk == noBlock {
			t.used.clear(idx)
			return noInode
		}
		in.DataBlock = blk
		in.Size = len(t.blocks.get(blk))
	}

	t.entries[idx] = in
	return idx
}

// delete frees any data block charged to the inode, then frees the
// inode slot itself.
func (t *inodeTable) delete(inum int) {
	in := &t.entries[inum]
	if in.DataBlock != noBlock {
		t.blocks.free(in.DataBlock)
		in.DataBlock = noBlock
	}
	in.Size = 0
	t.used.clear(inum)
}

// get returns a pointer to the inode record for inum. Calling get with
// an out-of-range inumber is a programming error in the core and
// aborts the process. Like blockPool.get, this does not re-check the
// allocation bitmap: callers reach an inumber either while holding the
// metadata mutex (where isAllocated is the right check to pair this
// with) or via an open-file handle that can only name an inode that
// was allocated at Open time, without re-reading bits shared by other
// inodes' concurrent create/delete calls.
func (t *inodeTable) get(inum int) *Inode {
	if inum < 0 || inum >= t.used.n {
		panic(fmt.Sprintf("tfs: get on out-of-range inode %d", inum))
	}
	return &t.entries[inum]
}

func (t *inodeTable) isAllocated(inum int) bool {
	return inum >= 0 && inum < t.used.n && t.used.get(inum)
}
