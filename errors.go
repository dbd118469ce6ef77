// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package tfs

import "errors"

// Error kinds recoverable callers may check for with errors.Is.
var (
	ErrInvalidArg    = errors.New("tfs: invalid argument")
	ErrNotFound      = errors.New("tfs: not found")
	ErrAlreadyExists = errors.New("tfs: already exists")
	ErrNoSpace       = errors.New("tfs: no space")
	ErrInvalidHandle = errors.New("tfs: invalid handle")
	ErrUnsupported   = errors.New("tfs: unsupported")
	ErrHostIO        = errors.New("tfs: host I/O error")
	ErrLoop          = errors.New("tfs: too many symbolic links")
)

// Error annotates one of the sentinels above with the operation and
// pathname (when relevant) that produced it.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, name string, err error) error {
	return &Error{Op: op, Name: name, Err: err}
}
