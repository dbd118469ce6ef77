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
	"context"

	"github.com/jacobsa/reqtrace"
)

// traced runs fn inside a reqtrace span named name, reporting fn's
// returned error to the span before propagating it. The span adds
// nothing when reqtrace is not enabled (see reqtrace.Enabled). It also
// writes an entry to the debug logger when fn is called and a second
// one when fn fails, gated the same way connection.go gates
// debugLogger.Printf around each FUSE op.
//
// This mirrors fuseops.commonOp's init/respond/respondErr sequence,
// collapsed into one helper since TFS has no per-operation struct
// hierarchy to hang state off of.
func traced(name string, fn func() error) error {
	_, report := reqtrace.StartSpan(context.Background(), name)
	getLogger().Printf("%s called", name)
	err := fn()
	if err != nil {
		getLogger().Printf("%s failed: %v", name, err)
	}
	report(err)
	return err
}
