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

// Package tfs implements an in-memory, flat-namespace toy filesystem:
// a small POSIX-like API (open, read, write, close, link, symlink,
// unlink, plus a bulk import from the host filesystem) backed by
// fixed-capacity in-process tables of inodes and data blocks.
//
// The primary elements of interest are:
//
//   - TFS, the filesystem instance returned by Init.
//
//   - Params, the set of fixed capacities (inode count, block count,
//     open-file slots, block size) an instance is created with.
//
//   - HostSource, the interface CopyFromHost reads from to bulk-import
//     bytes from outside the instance.
//
// There is no on-disk or kernel component: everything lives in RAM for
// the lifetime of the process, and a single TFS value is meant to be
// shared by many goroutines issuing concurrent operations.
package tfs
