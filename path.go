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

import "strings"

// maxSymlinkDepth bounds recursive symlink resolution at Open time, so
// a self-referential or mutually-referential symlink fails with
// ErrLoop instead of recursing forever. See the "Symlink cycles" open
// question discussion in DESIGN.md.
const maxSymlinkDepth = 40

// validPath reports whether name is a syntactically valid pathname: it
// begins with '/', has at least one character after the slash, that
// remainder contains no further '/', and the remainder's length is
// within the directory entry name width.
func validPath(name string) bool {
	if len(name) < 2 || name[0] != '/' {
		return false
	}

	rest := name[1:]
	if strings.Contains(rest, "/") {
		return false
	}

	return len(rest) <= maxNameLen
}

// entryName strips the leading slash from a pathname already known to
// be valid.
func entryName(name string) string {
	return name[1:]
}
