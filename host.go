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
	"io"
	"os"
)

// HostSource is the "opaque byte-stream identifier" CopyFromHost reads
// from: open for reading, get its total length, read that many bytes,
// close. It generalizes the fopen/fseek+ftell/rewind/fread/fclose
// sequence in the original tfs_copy_from_external_fs.
type HostSource interface {
	io.Reader
	io.Closer

	// Len reports the total number of bytes available to read.
	Len() (int64, error)
}

type hostFile struct {
	f    *os.File
	size int64
}

// OpenHostFile opens path on the real, host filesystem for use with
// CopyFromHost.
func OpenHostFile(path string) (HostSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError("OpenHostFile", path, ErrHostIO)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError("OpenHostFile", path, ErrHostIO)
	}

	return &hostFile{f: f, size: info.Size()}, nil
}

func (h *hostFile) Read(p []byte) (int, error) { return h.f.Read(p) }
func (h *hostFile) Close() error               { return h.f.Close() }
func (h *hostFile) Len() (int64, error)        { return h.size, nil }
