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

// Handle identifies an open file. It is valid only between the Open
// call that returned it and the matching Close.
type Handle int

// InvalidHandle is returned by Open on failure.
const InvalidHandle Handle = -1

// openFileEntry is one slot of the open-file table.
type openFileEntry struct {
	Inumber int
	Offset  int
}

// openFileTable is a fixed array of (inumber, offset) slots with a
// free/used bitmap. Handles are slot indices and are reused after
// remove. All methods assume the caller holds TFS.mu.
type openFileTable struct {
	entries []openFileEntry
	used    bitmap
}

func newOpenFileTable(count int) *openFileTable {
	return &openFileTable{
		entries: make([]openFileEntry, count),
		used:    newBitmap(count),
	}
}

// insert allocates a slot for (inumber, offset) and returns its
// handle, or InvalidHandle if the table is full.
func (t *openFileTable) insert(inumber, offset int) Handle {
	idx, ok := t.used.alloc()
	if !ok {
		return InvalidHandle
	}
	t.entries[idx] = openFileEntry{Inumber: inumber, Offset: offset}
	return Handle(idx)
}

// remove frees handle h. Callers must check get(h) succeeded first.
func (t *openFileTable) remove(h Handle) {
	t.used.clear(int(h))
}

// get returns the entry for h, or nil if h is not an allocated handle.
func (t *openFileTable) get(h Handle) *openFileEntry {
	i := int(h)
	if i < 0 || i >= t.used.n || !t.used.get(i) {
		return nil
	}
	return &t.entries[i]
}
