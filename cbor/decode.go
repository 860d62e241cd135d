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
	"errors"
	"fmt"
	"math"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	// Signature envelopes and their headers are small and shallow. These limits bound the work
	// done on attacker-controlled input
	maxNestedLevels  = 16
	maxArrayElements = 1024
	maxMapPairs      = 1024
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			MaxNestedLevels:  maxNestedLevels,
			MaxArrayElements: maxArrayElements,
			MaxMapPairs:      maxMapPairs,
			// Duplicate header labels would make key resolution ambiguous
			DupMapKey:        _cbor.DupMapKeyEnforcedAPF,
			MapKeyByteString: _cbor.MapKeyByteStringForbidden,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR data item in dataBytes into dest and returns the number of
// bytes consumed. Any data following the first item is ignored
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// DecodeMap decodes a CBOR map with integer or text string keys. Integer keys are returned as
// int64 and text keys as string, and the values are left undecoded. Any other key type results
// in an error
func DecodeMap(cborData []byte) (ret map[any]RawMessage, err error) {
	if MajorType(cborData) != CborTypeMap {
		return nil, fmt.Errorf(
			"expected map (0x%x), got 0x%x",
			CborTypeMap,
			MajorType(cborData),
		)
	}
	// There are certain types that cannot be used as map keys in Go but are valid in CBOR. We setup
	// this deferred function to recover from a possible panic and return an error
	defer func() {
		if r := recover(); r != nil {
			ret = nil
			err = fmt.Errorf(
				"decode failure, probably due to type unsupported by Go: %v",
				r,
			)
		}
	}()
	tmpMap := map[any]RawMessage{}
	if _, err := Decode(cborData, &tmpMap); err != nil {
		return nil, err
	}
	ret = make(map[any]RawMessage, len(tmpMap))
	for key, value := range tmpMap {
		switch k := key.(type) {
		// The upstream CBOR library uses uint64 by default for non-negative numeric values
		case uint64:
			if k > math.MaxInt64 {
				return nil, fmt.Errorf("map key too large: %d", k)
			}
			ret[int64(k)] = value
		case int64:
			ret[k] = value
		case string:
			ret[k] = value
		default:
			return nil, fmt.Errorf("unsupported map key type: %T", key)
		}
	}
	return ret, nil
}

// DecodeBytes decodes a definite or indefinite length CBOR byte string. Other types, including
// tagged byte strings, result in an error
func DecodeBytes(cborData []byte) ([]byte, error) {
	if MajorType(cborData) != CborTypeByteString {
		return nil, fmt.Errorf(
			"expected bytestring (0x%x), got 0x%x",
			CborTypeByteString,
			MajorType(cborData),
		)
	}
	ret := []byte{}
	if _, err := Decode(cborData, &ret); err != nil {
		return nil, err
	}
	// Always return a non-nil slice for a successfully decoded empty byte string
	if ret == nil {
		ret = []byte{}
	}
	return ret, nil
}

// DecodeBool decodes a CBOR boolean simple value
func DecodeBool(cborData []byte) (bool, error) {
	if len(cborData) == 0 {
		return false, errors.New("unexpected end of data")
	}
	switch cborData[0] {
	case CborSimpleTrue:
		return true, nil
	case CborSimpleFalse:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got 0x%x", cborData[0])
	}
}

// DecodeInt decodes a CBOR unsigned or negative integer that fits in an int64
func DecodeInt(cborData []byte) (int64, error) {
	switch MajorType(cborData) {
	case CborTypeUnsignedInt, CborTypeNegativeInt:
	default:
		return 0, fmt.Errorf("expected integer, got 0x%x", MajorType(cborData))
	}
	var ret int64
	if _, err := Decode(cborData, &ret); err != nil {
		return 0, err
	}
	return ret, nil
}

// DecodeList decodes a CBOR array into its undecoded elements
func DecodeList(cborData []byte) ([]RawMessage, error) {
	if MajorType(cborData) != CborTypeArray {
		return nil, fmt.Errorf(
			"expected array (0x%x), got 0x%x",
			CborTypeArray,
			MajorType(cborData),
		)
	}
	var ret []RawMessage
	if _, err := Decode(cborData, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
