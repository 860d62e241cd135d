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
	"bytes"

	"github.com/blinklabs-io/gocip30/cbor"
)

// COSE_Key labels for OKP keys (RFC 9053)
const (
	KeyLabelKeyType   int64 = 1
	KeyLabelAlgorithm int64 = 3
	KeyLabelCurve     int64 = -1
	KeyLabelX         int64 = -2
)

const (
	KeyTypeOKP   int64 = 1
	CurveEd25519 int64 = 6
)

// Key is a parsed COSE_Key
type Key struct {
	Params map[any]cbor.RawMessage
	x      []byte
}

// ParseKey parses a COSE_Key map. A value that is not a map results in a *FormatError. A key
// without usable public key bytes parses successfully and reports ErrNoPublicKey from PublicKey
func ParseKey(data []byte) (*Key, error) {
	params, err := cbor.DecodeMap(data)
	if err != nil {
		return nil, newFormatError(err, "COSE_Key")
	}
	ret := &Key{
		Params: params,
	}
	if raw, ok := params[KeyLabelX]; ok {
		if x, err := cbor.DecodeBytes(raw); err == nil {
			ret.x = x
		}
	}
	return ret, nil
}

// PublicKey returns a copy of the public key bytes at label -2
func (k *Key) PublicKey() ([]byte, error) {
	if k.x == nil {
		return nil, ErrNoPublicKey
	}
	return bytes.Clone(k.x), nil
}

func (k *Key) intParam(label int64) (int64, bool) {
	raw, ok := k.Params[label]
	if !ok {
		return 0, false
	}
	ret, err := cbor.DecodeInt(raw)
	if err != nil {
		return 0, false
	}
	return ret, true
}

// KeyType returns the kty parameter
func (k *Key) KeyType() (int64, bool) {
	return k.intParam(KeyLabelKeyType)
}

// Algorithm returns the alg parameter
func (k *Key) Algorithm() (int64, bool) {
	return k.intParam(KeyLabelAlgorithm)
}

// Curve returns the crv parameter
func (k *Key) Curve() (int64, bool) {
	return k.intParam(KeyLabelCurve)
}
