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
	"github.com/blinklabs-io/gocip30/cbor"
	gocose "github.com/veraison/go-cose"
)

// Protected header labels used by CIP-8 message signing
const (
	HeaderLabelAlgorithm int64 = gocose.HeaderLabelAlgorithm
	HeaderLabelKeyID     int64 = gocose.HeaderLabelKeyID
	HeaderLabelAddress         = "address"
	HeaderLabelHashed          = "hashed"
)

const sign1Length = 4

// Sign1 is a parsed COSE_Sign1 message
type Sign1 struct {
	// Raw bytes of the protected header, exactly as they appear in the message. These are the
	// bytes covered by the signature and must never be re-encoded
	ProtectedRaw []byte
	Protected    map[any]cbor.RawMessage
	Unprotected  map[any]cbor.RawMessage
	Payload      []byte
	Signature    []byte

	keyID   []byte
	address []byte
	hashed  bool
}

// ParseSign1 parses the first CBOR data item in data as an untagged COSE_Sign1 message. Data
// following the first item is ignored. Any structural problem results in a *FormatError
func ParseSign1(data []byte) (*Sign1, error) {
	if cbor.MajorType(data) != cbor.CborTypeArray {
		return nil, newFormatError(
			nil,
			"expected array, got major type 0x%x",
			cbor.MajorType(data),
		)
	}
	items, err := cbor.DecodeList(data)
	if err != nil {
		return nil, newFormatError(err, "decode envelope")
	}
	if len(items) != sign1Length {
		return nil, newFormatError(
			nil,
			"expected %d elements, got %d",
			sign1Length,
			len(items),
		)
	}
	ret := &Sign1{}
	if ret.ProtectedRaw, err = cbor.DecodeBytes(items[0]); err != nil {
		return nil, newFormatError(err, "protected header")
	}
	if ret.Protected, err = cbor.DecodeMap(ret.ProtectedRaw); err != nil {
		return nil, newFormatError(err, "protected header")
	}
	// The unprotected header is only consulted for the hashed flag
	if cbor.MajorType(items[1]) == cbor.CborTypeMap {
		if unprotected, err := cbor.DecodeMap(items[1]); err == nil {
			ret.Unprotected = unprotected
		}
	}
	if ret.Unprotected == nil {
		ret.Unprotected = map[any]cbor.RawMessage{}
	}
	if ret.Payload, err = cbor.DecodeBytes(items[2]); err != nil {
		return nil, newFormatError(err, "payload")
	}
	if ret.Signature, err = cbor.DecodeBytes(items[3]); err != nil {
		return nil, newFormatError(err, "signature")
	}
	if err := ret.decodeHeaders(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Sign1) decodeHeaders() error {
	var err error
	if raw, ok := s.Protected[HeaderLabelKeyID]; ok {
		if s.keyID, err = cbor.DecodeBytes(raw); err != nil {
			return newFormatError(err, "protected header label %d", HeaderLabelKeyID)
		}
	}
	if raw, ok := s.Protected[HeaderLabelAddress]; ok {
		if s.address, err = cbor.DecodeBytes(raw); err != nil {
			return newFormatError(err, "protected header label %q", HeaderLabelAddress)
		}
		// An empty address is the same as no address
		if len(s.address) == 0 {
			s.address = nil
		}
	}
	if raw, ok := s.Protected[HeaderLabelHashed]; ok {
		if s.hashed, err = cbor.DecodeBool(raw); err != nil {
			return newFormatError(err, "protected header label %q", HeaderLabelHashed)
		}
	} else if raw, ok := s.Unprotected[HeaderLabelHashed]; ok {
		// Values of the wrong type in the unprotected header are ignored
		s.hashed, _ = cbor.DecodeBool(raw)
	}
	return nil
}

// KeyID returns the value of protected header label 4. CIP-30 wallets place the raw Ed25519
// public key there
func (s *Sign1) KeyID() []byte {
	return s.keyID
}

// Address returns the raw address bytes from the protected header, or nil if none are present
func (s *Sign1) Address() []byte {
	return s.address
}

// Hashed reports whether the payload is a Blake2b-224 hash of the original message
func (s *Sign1) Hashed() bool {
	return s.hashed
}

// SigStructure returns the encoded Signature1 structure for the message, which is the data that
// was signed
func (s *Sign1) SigStructure() ([]byte, error) {
	return SigStructure(s.ProtectedRaw, s.Payload)
}
