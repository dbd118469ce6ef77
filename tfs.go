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
	"fmt"
	"io"
	"sync"

	"github.com/jacobsa/syncutil"
)

// OpenMode is a set of combinable bit flags passed to Open.
type OpenMode uint

const (
	// ModeCreate creates the file if it does not already exist.
	ModeCreate OpenMode = 1 << iota
	// ModeTruncate discards existing bytes (and the charged block) on
	// open, if the file already has content.
	ModeTruncate
	// ModeAppend sets the initial offset to the file's current size
	// rather than zero.
	ModeAppend
)

// TFS is an in-memory, flat-namespace toy filesystem instance. The
// zero value is not usable; construct one with Init.
//
// When acquiring a per-inode lock, the caller must not hold mu. The
// reverse nesting is allowed: Write and Open's truncate branch take mu
// while holding an inode's lock.
type TFS struct {
	params Params

	// GUARDED_BY(mu): the inode and block bitmaps, the root directory's
	// entry table, every inode's Kind/Size/DataBlock/HardLinks fields,
	// and the open-file table's allocation.
	mu syncutil.InvariantMutex

	blocks    *blockPool
	inodes    *inodeTable
	dirs      *dirTable
	openFiles *openFileTable

	// One readers/writer lock per inode slot, guarding that inode's
	// data block content. Index i guards inode i regardless of whether
	// i is currently allocated.
	inodeLocks []sync.RWMutex
}

// Init creates a new instance with the given options applied over
// DefaultParams. It allocates the root directory at inumber 0.
func Init(opts ...Option) (*TFS, error) {
	params := DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	blocks := newBlockPool(params.MaxBlockCount, params.BlockSize)
	inodes := newInodeTable(params.MaxInodeCount, blocks)
	dirs := newDirTable(blocks, inodes)
	openFiles := newOpenFileTable(params.MaxOpenFilesCount)

	t := &TFS{
		params:     params,
		blocks:     blocks,
		inodes:     inodes,
		dirs:       dirs,
		openFiles:  openFiles,
		inodeLocks: make([]sync.RWMutex, params.MaxInodeCount),
	}
	t.mu = syncutil.NewInvariantMutex(t.checkInvariants)

	if inum := inodes.create(Directory); inum != rootInum {
		return nil, newError("Init", "", fmt.Errorf("root inode got unexpected number %d", inum))
	}
	dirs.initEntries(inodes.get(rootInum))

	return t, nil
}

func (t *TFS) checkInvariants() {
	if !t.inodes.isAllocated(rootInum) {
		panic("tfs: root inode is not allocated")
	}
	root := t.inodes.get(rootInum)
	if root.Kind != Directory {
		panic("tfs: inode 0 is not a directory")
	}

	for i := 0; i < t.params.MaxInodeCount; i++ {
		if !t.inodes.isAllocated(i) {
			continue
		}
		in := t.inodes.get(i)
		if in.Kind == File && in.Size == 0 && in.DataBlock != noBlock {
			panic(fmt.Sprintf("tfs: inode %d has zero size but a charged block", i))
		}
		if in.Size > 0 && !t.blocks.used.get(in.DataBlock) {
			panic(fmt.Sprintf("tfs: inode %d's data block %d is not allocated", i, in.DataBlock))
		}
	}
}

// Destroy releases the instance's state. It is not safe to call
// concurrently with any other method, nor to use the instance
// afterward; spec.md §5 leaves concurrent Init/Destroy undefined.
func (t *TFS) Destroy() error {
	return nil
}

// Open implements spec.md §4.6. See DESIGN.md for the truncate and
// symlink-follow locking sequence.
func (t *TFS) Open(name string, mode OpenMode) (Handle, error) {
	var h Handle
	err := traced("TFS.Open", func() error {
		var err error
		h, err = t.open(name, mode, 0)
		return err
	})
	return h, err
}

func (t *TFS) open(name string, mode OpenMode, depth int) (Handle, error) {
	if !validPath(name) {
		return InvalidHandle, newError("Open", name, ErrInvalidArg)
	}
	if depth > maxSymlinkDepth {
		return InvalidHandle, newError("Open", name, ErrLoop)
	}

	t.mu.Lock()

	root := t.inodes.get(rootInum)
	inum, found := t.dirs.find(root, entryName(name))

	if !found {
		if mode&ModeCreate == 0 {
			t.mu.Unlock()
			return InvalidHandle, newError("Open", name, ErrNotFound)
		}

		newInum := t.inodes.create(File)
		if newInum == noInode {
			t.mu.Unlock()
			return InvalidHandle, newError("Open", name, ErrNoSpace)
		}
		if err := t.dirs.add(root, entryName(name), newInum); err != nil {
			t.inodes.delete(newInum)
			t.mu.Unlock()
			return InvalidHandle, newError("Open", name, err)
		}

		// Note: if the open-file table is full here, the file remains
		// created. Documented wart, spec.md §4.6.
		h := t.openFiles.insert(newInum, 0)
		t.mu.Unlock()
		if h == InvalidHandle {
			return InvalidHandle, newError("Open", name, ErrNoSpace)
		}
		return h, nil
	}

	in := t.inodes.get(inum)

	if in.Kind == Symlink {
		dataBlock, size := in.DataBlock, in.Size
		t.mu.Unlock()

		target, err := t.readSymlinkBody(inum, dataBlock, size)
		if err != nil {
			return InvalidHandle, err
		}
		if !validPath(target) {
			return InvalidHandle, newError("Open", name, ErrInvalidArg)
		}
		return t.open(target, mode, depth+1)
	}

	if mode&ModeTruncate != 0 && in.Size > 0 {
		t.mu.Unlock()
		t.inodeLocks[inum].Lock()
		t.mu.Lock()

		// name may have been unlinked, and inum reallocated to an
		// unrelated inode, while mu was released above. Re-resolve
		// before trusting inum again.
		curInum, ok := t.dirs.find(root, entryName(name))
		if !ok || curInum != inum {
			t.mu.Unlock()
			t.inodeLocks[inum].Unlock()
			return InvalidHandle, newError("Open", name, ErrNotFound)
		}

		in = t.inodes.get(inum)
		if in.Size > 0 {
			t.blocks.free(in.DataBlock)
			in.DataBlock = noBlock
			in.Size = 0
		}
		t.inodeLocks[inum].Unlock()
	}

	offset := 0
	if mode&ModeAppend != 0 {
		offset = in.Size
	}

	h := t.openFiles.insert(inum, offset)
	t.mu.Unlock()
	if h == InvalidHandle {
		return InvalidHandle, newError("Open", name, ErrNoSpace)
	}
	return h, nil
}

// readSymlinkBody reads a symlink's null-terminated target pathname
// under a writer lock, matching the per-call lock table in spec.md §5.
// dataBlock/size are snapshotted by the caller while holding mu, since
// a symlink's body never changes after Symlink creates it.
func (t *TFS) readSymlinkBody(inum, dataBlock, size int) (string, error) {
	t.inodeLocks[inum].Lock()
	defer t.inodeLocks[inum].Unlock()

	if size == 0 || dataBlock == noBlock {
		return "", nil
	}

	region := t.blocks.get(dataBlock)
	n := 0
	for n < size && n < len(region) && region[n] != 0 {
		n++
	}
	return string(region[:n]), nil
}

// Close implements spec.md §4.6.
func (t *TFS) Close(h Handle) error {
	return traced("TFS.Close", func() error {
		t.mu.Lock()
		defer t.mu.Unlock()

		if t.openFiles.get(h) == nil {
			return newError("Close", "", ErrInvalidHandle)
		}
		t.openFiles.remove(h)
		return nil
	})
}

// Read implements spec.md §4.6.
func (t *TFS) Read(h Handle, buf []byte) (int, error) {
	var n int
	err := traced("TFS.Read", func() error {
		t.mu.Lock()
		entry := t.openFiles.get(h)
		t.mu.Unlock()
		if entry == nil {
			return newError("Read", "", ErrInvalidHandle)
		}
		inum := entry.Inumber

		t.inodeLocks[inum].RLock()
		defer t.inodeLocks[inum].RUnlock()

		in := t.inodes.get(inum)
		avail := in.Size - entry.Offset
		if avail < 0 {
			avail = 0
		}

		toRead := len(buf)
		if toRead > avail {
			toRead = avail
		}
		if toRead > 0 {
			region := t.blocks.get(in.DataBlock)
			copy(buf[:toRead], region[entry.Offset:entry.Offset+toRead])
			entry.Offset += toRead
		}

		n = toRead
		return nil
	})
	return n, err
}

// Write implements spec.md §4.6.
func (t *TFS) Write(h Handle, buf []byte) (int, error) {
	var n int
	err := traced("TFS.Write", func() error {
		t.mu.Lock()
		entry := t.openFiles.get(h)
		t.mu.Unlock()
		if entry == nil {
			return newError("Write", "", ErrInvalidHandle)
		}
		inum := entry.Inumber

		t.inodeLocks[inum].Lock()
		defer t.inodeLocks[inum].Unlock()

		in := t.inodes.get(inum)

		toWrite := len(buf)
		if entry.Offset+toWrite > t.params.BlockSize {
			toWrite = t.params.BlockSize - entry.Offset
		}
		if toWrite <= 0 {
			n = 0
			return nil
		}

		blk := in.DataBlock
		if in.Size == 0 {
			t.mu.Lock()
			blk = t.blocks.alloc()
			t.mu.Unlock()
			if blk == noBlock {
				return newError("Write", "", ErrNoSpace)
			}
		}

		region := t.blocks.get(blk)
		copy(region[entry.Offset:entry.Offset+toWrite], buf[:toWrite])
		entry.Offset += toWrite

		t.mu.Lock()
		in.DataBlock = blk
		if entry.Offset > in.Size {
			in.Size = entry.Offset
		}
		t.mu.Unlock()

		n = toWrite
		return nil
	})
	return n, err
}

// Link implements spec.md §4.6.
func (t *TFS) Link(target, link string) error {
	return traced("TFS.Link", func() error {
		if !validPath(target) || !validPath(link) {
			return newError("Link", link, ErrInvalidArg)
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		root := t.inodes.get(rootInum)
		targetInum, ok := t.dirs.find(root, entryName(target))
		if !ok {
			return newError("Link", target, ErrNotFound)
		}

		targetIn := t.inodes.get(targetInum)
		if targetIn.Kind == Symlink {
			return newError("Link", target, ErrUnsupported)
		}

		if err := t.dirs.add(root, entryName(link), targetInum); err != nil {
			return newError("Link", link, err)
		}

		targetIn.HardLinks++
		return nil
	})
}

// Symlink implements spec.md §4.6.
func (t *TFS) Symlink(target, link string) error {
	return traced("TFS.Symlink", func() error {
		if !validPath(target) || !validPath(link) {
			return newError("Symlink", link, ErrInvalidArg)
		}

		t.mu.Lock()

		root := t.inodes.get(rootInum)
		if _, ok := t.dirs.find(root, entryName(target)); !ok {
			t.mu.Unlock()
			return newError("Symlink", target, ErrNotFound)
		}

		inum := t.inodes.create(Symlink)
		if inum == noInode {
			t.mu.Unlock()
			return newError("Symlink", link, ErrNoSpace)
		}

		if err := t.dirs.add(root, entryName(link), inum); err != nil {
			t.inodes.delete(inum)
			t.mu.Unlock()
			return newError("Symlink", link, err)
		}

		blk := t.blocks.alloc()
		if blk == noBlock {
			t.dirs.clear(root, entryName(link))
			t.inodes.delete(inum)
			t.mu.Unlock()
			return newError("Symlink", link, ErrNoSpace)
		}

		in := t.inodes.get(inum)
		in.DataBlock = blk
		in.Size = len(target) + 1
		t.mu.Unlock()

		t.inodeLocks[inum].Lock()
		region := t.blocks.get(blk)
		copy(region, target)
		region[len(target)] = 0
		t.inodeLocks[inum].Unlock()

		return nil
	})
}

// Unlink implements spec.md §4.6.
func (t *TFS) Unlink(name string) error {
	return traced("TFS.Unlink", func() error {
		if !validPath(name) {
			return newError("Unlink", name, ErrInvalidArg)
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		root := t.inodes.get(rootInum)
		inum, ok := t.dirs.find(root, entryName(name))
		if !ok {
			return newError("Unlink", name, ErrNotFound)
		}

		in := t.inodes.get(inum)
		if in.Kind == Symlink {
			t.inodes.delete(inum)
		} else {
			in.HardLinks--
			if in.HardLinks <= 0 {
				t.inodes.delete(inum)
			}
		}

		if err := t.dirs.clear(root, entryName(name)); err != nil {
			return newError("Unlink", name, err)
		}
		return nil
	})
}

// CopyFromHost implements spec.md §4.6: it opens destName with
// ModeCreate|ModeTruncate, reads up to one block's worth of bytes from
// src, writes them, and closes.
func (t *TFS) CopyFromHost(src HostSource, destName string) error {
	return traced("TFS.CopyFromHost", func() error {
		defer src.Close()

		size, err := src.Len()
		if err != nil {
			return newError("CopyFromHost", destName, ErrHostIO)
		}
		if size > int64(t.params.BlockSize) {
			size = int64(t.params.BlockSize)
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(src, buf); err != nil {
			return newError("CopyFromHost", destName, ErrHostIO)
		}

		h, err := t.Open(destName, ModeCreate|ModeTruncate)
		if err != nil {
			return err
		}
		defer t.Close(h)

		if _, err := t.Write(h, buf); err != nil {
			return err
		}
		return nil
	})
}
