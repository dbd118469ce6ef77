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

// Params holds the tunables an instance is created with. All limits
// derive from these four fields; once passed to Init they never
// change for the lifetime of the instance.
type Params struct {
	// Maximum number of live inodes, including the root directory.
	MaxInodeCount int

	// Maximum number of data blocks in the pool.
	MaxBlockCount int

	// Maximum number of simultaneously open files.
	MaxOpenFilesCount int

	// Size in bytes of every block. Files and symlink bodies cannot
	// exceed this.
	BlockSize int
}

// DefaultParams returns the parameters applied when Init is called
// with no options.
func DefaultParams() Params {
	return Params{
		MaxInodeCount:     64,
		MaxBlockCount:     1024,
		MaxOpenFilesCount: 16,
		BlockSize:         1024,
	}
}

// Option overrides a single field of Params over the defaults.
type Option func(*Params)

// WithMaxInodeCount overrides the inode table capacity.
func WithMaxInodeCount(n int) Option {
	return func(p *Params) { p.MaxInodeCount = n }
}

// WithMaxBlockCount overrides the block pool capacity.
func WithMaxBlockCount(n int) Option {
	return func(p *Params) { p.MaxBlockCount = n }
}

// WithMaxOpenFilesCount overrides the open-file table capacity.
func WithMaxOpenFilesCount(n int) Option {
	return func(p *Params) { p.MaxOpenFilesCount = n }
}

// WithBlockSize overrides the size in bytes of every block.
func WithBlockSize(n int) Option {
	return func(p *Params) { p.BlockSize = n }
}

func (p Params) validate() error {
	switch {
	case p.MaxInodeCount <= 0:
		return newError("Init", "", ErrInvalidArg)
	case p.MaxBlockCount <= 0:
		return newError("Init", "", ErrInvalidArg)
	case p.MaxOpenFilesCount <= 0:
		return newError("Init", "", ErrInvalidArg)
	case p.BlockSize <= 0:
		return newError("Init", "", ErrInvalidArg)
	}
	return nil
}
