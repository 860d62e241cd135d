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

package address

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAddressType     = errors.New("unknown address type")
	ErrUnsupportedAddressType = errors.New("unsupported address type")
	ErrInvalidAddressLength   = errors.New("invalid address length")
	ErrInvalidPublicKeyLength = errors.New("invalid public key length")
)

// UnknownAddressTypeError indicates an address header whose type nibble is not a known address type
type UnknownAddressTypeError struct {
	Header byte
}

func (e UnknownAddressTypeError) Error() string {
	return fmt.Sprintf(
		"unknown address type %d in header 0x%02x",
		(e.Header&AddressHeaderTypeMask)>>4,
		e.Header,
	)
}

func (UnknownAddressTypeError) Is(target error) bool {
	return target == ErrUnknownAddressType
}

// AddressLengthError indicates address bytes that are too short for the layout of their type
type AddressLengthError struct {
	Kind     Kind
	Length   int
	Expected int
}

func (e AddressLengthError) Error() string {
	return fmt.Sprintf(
		"invalid %s address length: got %d bytes, need at least %d",
		e.Kind,
		e.Length,
		e.Expected,
	)
}

func (AddressLengthError) Is(target error) bool {
	return target == ErrInvalidAddressLength
}
