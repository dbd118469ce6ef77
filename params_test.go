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

package tfs_test

import (
	"errors"
	"testing"

	"github.com/arrzdev/tfs"
	. "github.com/jacobsa/ogletest"
)

func TestParams(t *testing.T) { RunTests(t) }

type ParamsTest struct {
}

func init() { RegisterTestSuite(&ParamsTest{}) }

func (t *ParamsTest) Defaults() {
	p := tfs.DefaultParams()
	ExpectEq(64, p.MaxInodeCount)
	ExpectEq(1024, p.MaxBlockCount)
	ExpectEq(16, p.MaxOpenFilesCount)
	ExpectEq(1024, p.BlockSize)
}

func (t *ParamsTest) OptionsOverrideDefaults() {
	f, err := tfs.Init(
		tfs.WithMaxInodeCount(4),
		tfs.WithMaxBlockCount(4),
		tfs.WithMaxOpenFilesCount(2),
		tfs.WithBlockSize(128))
	AssertEq(nil, err)
	defer f.Destroy()

	// With only 4 inodes and the root already taking one, exactly 3
	// files can be created before NO_SPACE.
	names := []string{"/f0", "/f1", "/f2"}
	for _, name := range names {
		h, err := f.Open(name, tfs.ModeCreate)
		AssertEq(nil, err)
		AssertEq(nil, f.Close(h))
	}

	_, err = f.Open("/f3", tfs.ModeCreate)
	ExpectTrue(errors.Is(err, tfs.ErrNoSpace))

	for _, name := range names {
		AssertEq(nil, f.Unlink(name))
	}
}

func (t *ParamsTest) RejectsNonPositiveValues() {
	_, err := tfs.Init(tfs.WithBlockSize(0))
	ExpectNe(nil, err)
}
