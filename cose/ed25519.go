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
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	gocose "github.com/veraison/go-cose"
)

// AlgorithmEdDSA is the COSE algorithm identifier for EdDSA
const AlgorithmEdDSA gocose.Algorithm = -8

// VerifyEd25519 checks an Ed25519 signature over payload. It returns false for a public key or
// signature of the wrong size, a public key that is not a valid curve point encoding, or a
// signature that does not verify
func VerifyEd25519(payload []byte, signature []byte, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), payload, signature)
}

// Ed25519Verifier implements the go-cose Verifier interface for Ed25519 public keys
type Ed25519Verifier struct {
	publicKey []byte
}

// NewEd25519Verifier returns a verifier for the provided raw public key
func NewEd25519Verifier(publicKey []byte) (*Ed25519Verifier, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf(
			"invalid public key size: expected %d, got %d",
			ed25519.PublicKeySize,
			len(publicKey),
		)
	}
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return &Ed25519Verifier{
		publicKey: append([]byte(nil), publicKey...),
	}, nil
}

// Algorithm returns the COSE algorithm identifier
func (v *Ed25519Verifier) Algorithm() gocose.Algorithm {
	return AlgorithmEdDSA
}

// Verify checks the signature over content, which for COSE_Sign1 is the encoded Sig_structure
func (v *Ed25519Verifier) Verify(content []byte, signature []byte) error {
	if !VerifyEd25519(content, signature, v.publicKey) {
		return gocose.ErrVerification
	}
	return nil
}
