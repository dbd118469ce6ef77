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

import "encoding/binary"

// maxNameLen bounds a directory entry's name, not counting the
// trailing NUL.
const maxNameLen = 27

// direntSize is the on-the-wire size of one directory entry: a
// null-terminated name field followed by a little-endian int32
// inumber. A zero-valued name field with inumber == emptyInum marks an
// unused slot.
const direntSize = maxNameLen + 1 + 4

const emptyInum = -1

// dirTable interprets a DIRECTORY inode's data block as a dense array
// of fixed-width entries. All methods assume the caller holds TFS.mu.
type dirTable struct {
	blocks *blockPool
	inodes *inodeTable
}

func newDirTable(blocks *blockPool, inodes *inodeTable) *dirTable {
	return &dirTable{blocks: blocks, inodes: inodes}
}

func (d *dirTable) region(dir *Inode) []byte {
	return d.blocks.get(dir.DataBlock)
}

func (d *dirTable) capacity(dir *Inode) int {
	return len(d.region(dir)) / direntSize
}

func (d *dirTable) slot(dir *Inode, i int) []byte {
	r := d.region(dir)
	return r[i*direntSize : (i+1)*direntSize]
}

func decodeDirent(slot []byte) (name string, inum int) {
	nameBytes := slot[:maxNameLen+1]
	n := 0
	for n < len(nameBytes) && nameBytes[n] != 0 {
		n++
	}
	name = string(nameBytes[:n])
	inum = int(int32(binary.LittleEndian.Uint32(slot[maxNameLen+1:])))
	return
}

func encodeDirent(slot []byte, name string, inum int) {
	for i := range slot[:maxNameLen+1] {
		slot[i] = 0
	}
	copy(slot[:maxNameLen], name)
	binary.LittleEndian.PutUint32(slot[maxNameLen+1:], uint32(int32(inum)))
}

// find returns the inumber of the entry named name, or (noInode,
// false) if none exists.
func (d *dirTable) find(dir *Inode, name string) (int, bool) {
	for i := 0; i < d.capacity(dir); i++ {
		n, inum := decodeDirent(d.slot(dir, i))
		if inum != emptyInum && n == name {
			return inum, true
		}
	}
	return noInode, false
}

// add writes a new entry into the first empty slot. It fails with
// ErrAlreadyExists if name is already present, or ErrNoSpace if the
// directory is full.
func (d *dirTable) add(dir *Inode, name string, inum int) error {
	if _, ok := d.find(dir, name); ok {
		return ErrAlreadyExists
	}

	for i := 0; i < d.capacity(dir); i++ {
		slot := d.slot(dir, i)
		_, existing := decodeDirent(slot)
		if existing == emptyInum {
			encodeDirent(slot, name, inum)
			return nil
		}
	}

	return ErrNoSpace
}

// clear marks the entry named name as empty. It fails with
// ErrNotFound if no such entry exists.
func (d *dirTable) clear(dir *Inode, name string) error {
	for i := 0; i < d.capacity(dir); i++ {
		slot := d.slot(dir, i)
		n, inum := decodeDirent(slot)
		if inum != emptyInum && n == name {
			encodeDirent(slot, "", emptyInum)
			return nil
		}
	}
	return ErrNotFound
}

// initEntries marks every slot in dir's data block empty. Called once,
// when the root directory inode is created.
func (d *dirTable) initEntries(dir *Inode) {
	for i := 0; i < d.capacity(dir); i++ {
		encodeDirent(d.slot(dir, i), "", emptyInum)
	}
}
