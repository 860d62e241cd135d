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
	"fmt"

	"github.com/blinklabs-io/gocip30/cbor"
)

// Signature1Context is the context string of a COSE_Sign1 Sig_structure
const Signature1Context = "Signature1"

// SigStructure builds the Sig_structure ["Signature1", protected, h'', payload] and encodes it
// as canonical CBOR. The protected header bytes are embedded as-is. Nil inputs are encoded as
// empty byte strings
func SigStructure(protected []byte, payload []byte) ([]byte, error) {
	if protected == nil {
		protected = []byte{}
	}
	if payload == nil {
		payload = []byte{}
	}
	ret, err := cbor.EncodeCanonical(
		[]any{
			Signature1Context,
			protected,
			// External AAD is always empty for CIP-8 signatures
			[]byte{},
			payload,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("encode Sig_structure: %w", err)
	}
	return ret, nil
}
