// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds. Stages wrap underlying failures with one of these so callers
// can classify them with errors.Is.
var (
	ErrNetwork    = errors.New("network error")
	ErrFilesystem = errors.New("filesystem error")
	ErrParse      = errors.New("parse error")
	ErrModel      = errors.New("model invocation error")
)
