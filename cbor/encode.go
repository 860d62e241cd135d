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

package cbor

import (
	"bytes"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once

	cachedCanonicalEncMode     _cbor.EncMode
	cachedCanonicalEncModeErr  error
	cachedCanonicalEncModeOnce sync.Once
)

func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// getCanonicalEncMode returns the encoder used for data that gets signed. Lengths and integers
// always use their shortest form, containers are always definite-length, and a nil slice is
// encoded as an empty container rather than null
func getCanonicalEncMode() (_cbor.EncMode, error) {
	cachedCanonicalEncModeOnce.Do(func() {
		opts := _cbor.CoreDetEncOptions()
		opts.NilContainers = _cbor.NilContainerAsEmpty
		opts.IndefLength = _cbor.IndefLengthForbidden
		cachedCanonicalEncMode, cachedCanonicalEncModeErr = opts.EncMode()
	})
	return cachedCanonicalEncMode, cachedCanonicalEncModeErr
}

func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

// EncodeCanonical encodes the provided value using canonical CBOR (RFC 8949 core deterministic
// encoding). Encoding the same value twice always produces identical bytes
func EncodeCanonical(data any) ([]byte, error) {
	em, err := getCanonicalEncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(data)
}
