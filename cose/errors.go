// Copyright 2025 Blink Labs Software
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

package cose

import (
	"errors"
	"fmt"
)

var (
	ErrFormat      = errors.New("malformed COSE_Sign1 structure")
	ErrNoPublicKey = errors.New("no public key available")
)

// FormatError indicates that the provided bytes are not a well-formed COSE_Sign1 message or
// COSE_Key. It matches ErrFormat with errors.Is
type FormatError struct {
	Msg string
	Err error
}

func newFormatError(err error, format string, args ...any) *FormatError {
	return &FormatError{
		Msg: fmt.Sprintf(format, args...),
		Err: err,
	}
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", ErrFormat, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrFormat, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (*FormatError) Is(target error) bool {
	return target == ErrFormat
}
