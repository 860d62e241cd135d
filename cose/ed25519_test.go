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
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/blinklabs-io/gocip30/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gocose "github.com/veraison/go-cose"
)

// y = 2 is not the encoding of any point on edwards25519
const testInvalidPointHex = "0200000000000000000000000000000000000000000000000000000000000000"

func TestVerifyEd25519(t *testing.T) {
	privKey := test.Ed25519Key(0x01)
	pub := test.PublicKey(privKey)
	payload := []byte("payload")
	sig := ed25519.Sign(privKey, payload)
	assert.True(t, VerifyEd25519(payload, sig, pub))
	assert.False(t, VerifyEd25519([]byte("other payload"), sig, pub))
	assert.False(t, VerifyEd25519(payload, sig, test.PublicKey(test.Ed25519Key(0x02))))
	assert.False(t, VerifyEd25519(payload, sig[:63], pub))
	assert.False(t, VerifyEd25519(payload, append(bytes.Clone(sig), 0x00), pub))
	assert.False(t, VerifyEd25519(payload, sig, pub[:31]))
	assert.False(t, VerifyEd25519(payload, sig, nil))
	assert.False(t, VerifyEd25519(payload, nil, pub))
	assert.False(t, VerifyEd25519(payload, sig, test.DecodeHexString(testInvalidPointHex)))
	for i := range sig {
		mutated := bytes.Clone(sig)
		mutated[i] ^= 0x01
		assert.False(t, VerifyEd25519(payload, mutated, pub), "mutated signature byte %d", i)
	}
}

func TestVerifyEd25519Fixture(t *testing.T) {
	sign1, err := ParseSign1(test.DecodeHexString(testSign1Hex))
	require.NoError(t, err)
	sigStructure, err := sign1.SigStructure()
	require.NoError(t, err)
	pub := test.DecodeHexString(testPublicKeyHex)
	assert.True(t, VerifyEd25519(sigStructure, sign1.Signature, pub))
	// The signature covers the Sig_structure, not the bare payload
	assert.False(t, VerifyEd25519(sign1.Payload, sign1.Signature, pub))
}

func TestNewEd25519Verifier(t *testing.T) {
	_, err := NewEd25519Verifier([]byte{0x01})
	assert.Error(t, err)
	_, err = NewEd25519Verifier(test.DecodeHexString(testInvalidPointHex))
	assert.Error(t, err)
	verifier, err := NewEd25519Verifier(test.DecodeHexString(testPublicKeyHex))
	require.NoError(t, err)
	assert.Equal(t, gocose.Algorithm(-8), verifier.Algorithm())
}

func TestEd25519VerifierGoCoseFixture(t *testing.T) {
	var msg gocose.UntaggedSign1Message
	require.NoError(t, msg.UnmarshalCBOR(test.DecodeHexString(testSign1Hex)))
	verifier, err := NewEd25519Verifier(test.DecodeHexString(testPublicKeyHex))
	require.NoError(t, err)
	assert.NoError(t, msg.Verify(nil, verifier))
	msg.Signature[0] ^= 0x01
	err = msg.Verify(nil, verifier)
	assert.True(t, errors.Is(err, gocose.ErrVerification), "unexpected error: %v", err)
}

func TestEd25519VerifierGoCoseSigned(t *testing.T) {
	privKey := test.Ed25519Key(0x07)
	pub := test.PublicKey(privKey)
	address := append([]byte{0xe1}, bytes.Repeat([]byte{0xab}, 28)...)
	data := test.SignSign1(
		privKey,
		map[any]any{
			HeaderLabelAddress: address,
		},
		map[any]any{
			HeaderLabelHashed: false,
		},
		[]byte(testMessage),
	)
	sign1, err := ParseSign1(data)
	require.NoError(t, err)
	assert.Equal(t, address, sign1.Address())
	assert.Equal(t, testMessage, string(sign1.Payload))
	assert.False(t, sign1.Hashed())
	sigStructure, err := sign1.SigStructure()
	require.NoError(t, err)
	assert.True(t, VerifyEd25519(sigStructure, sign1.Signature, pub))

	// go-cose agrees on the signed bytes
	var msg gocose.UntaggedSign1Message
	require.NoError(t, msg.UnmarshalCBOR(data))
	verifier, err := NewEd25519Verifier(pub)
	require.NoError(t, err)
	assert.NoError(t, msg.Verify(nil, verifier))
}
