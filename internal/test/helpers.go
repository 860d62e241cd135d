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

package test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/blinklabs-io/gocip30/cbor"
	gocose "github.com/veraison/go-cose"
)

// AlgorithmEdDSA is the COSE algorithm identifier for EdDSA
const AlgorithmEdDSA gocose.Algorithm = -8

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Ed25519Key returns a deterministic Ed25519 private key with every seed byte set to the provided value
func Ed25519Key(seed byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
}

// PublicKey returns the raw public key bytes for the provided private key
func PublicKey(key ed25519.PrivateKey) []byte {
	return []byte(key.Public().(ed25519.PublicKey))
}

// CoseKeyHex returns the hex-encoded COSE_Key for an Ed25519 public key, as produced by CIP-30 wallets
func CoseKeyHex(publicKey []byte) string {
	tmpKey := map[int]any{
		1:  1,  // kty: OKP
		3:  -8, // alg: EdDSA
		-1: 6,  // crv: Ed25519
		-2: publicKey,
	}
	data, err := cbor.Encode(tmpKey)
	if err != nil {
		panic(fmt.Sprintf("error encoding COSE_Key: %s", err))
	}
	return hex.EncodeToString(data)
}

type ed25519Signer struct {
	key ed25519.PrivateKey
}

func (s ed25519Signer) Algorithm() gocose.Algorithm {
	return AlgorithmEdDSA
}

func (s ed25519Signer) Sign(_ io.Reader, content []byte) ([]byte, error) {
	return ed25519.Sign(s.key, content), nil
}

// SignSign1 builds and signs an untagged COSE_Sign1 message using go-cose, the way a wallet
// implementing CIP-30 signData would
func SignSign1(
	key ed25519.PrivateKey,
	protected map[any]any,
	unprotected map[any]any,
	payload []byte,
) []byte {
	msg := gocose.UntaggedSign1Message{
		Headers: gocose.Headers{
			Protected: gocose.ProtectedHeader{
				gocose.HeaderLabelAlgorithm: AlgorithmEdDSA,
			},
			Unprotected: gocose.UnprotectedHeader{},
		},
		Payload: payload,
	}
	for k, v := range protected {
		msg.Headers.Protected[k] = v
	}
	for k, v := range unprotected {
		msg.Headers.Unprotected[k] = v
	}
	if err := msg.Sign(nil, nil, ed25519Signer{key: key}); err != nil {
		panic(fmt.Sprintf("error signing COSE_Sign1: %s", err))
	}
	data, err := msg.MarshalCBOR()
	if err != nil {
		panic(fmt.Sprintf("error encoding COSE_Sign1: %s", err))
	}
	return data
}

// BuildSign1 encodes a COSE_Sign1 array from the provided parts without any validation, which
// allows building malformed messages
func BuildSign1(protected any, unprotected any, payload any, signature any) []byte {
	data, err := cbor.Encode([]any{protected, unprotected, payload, signature})
	if err != nil {
		panic(fmt.Sprintf("error encoding COSE_Sign1: %s", err))
	}
	return data
}

// SignRawSign1 signs the Signature1 structure for arbitrary protected header bytes and returns
// the encoded COSE_Sign1 message
func SignRawSign1(
	key ed25519.PrivateKey,
	protected []byte,
	unprotected map[any]any,
	payload []byte,
) []byte {
	sigStructure, err := cbor.EncodeCanonical(
		[]any{"Signature1", protected, []byte{}, payload},
	)
	if err != nil {
		panic(fmt.Sprintf("error encoding Signature1: %s", err))
	}
	if unprotected == nil {
		unprotected = map[any]any{}
	}
	return BuildSign1(
		protected,
		unprotected,
		payload,
		ed25519.Sign(key, sigStructure),
	)
}
