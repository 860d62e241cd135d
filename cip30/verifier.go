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

package cip30

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/gocip30/address"
	"github.com/blinklabs-io/gocip30/cose"
)

// Verifier verifies CIP-8 / CIP-30 data signatures. It holds no mutable state and is safe for
// concurrent use
type Verifier struct {
	logger               *slog.Logger
	strictKeyRequirement bool
	maxSignatureSize     int
}

// NewVerifier returns a verifier with the provided options applied. By default a missing public
// key is a NoPublicKeyError and inputs are limited to DefaultMaxSignatureSize bytes
func NewVerifier(options ...VerifierOptionFunc) *Verifier {
	v := &Verifier{
		strictKeyRequirement: true,
		maxSignatureSize:     DefaultMaxSignatureSize,
	}
	// Apply provided options functions
	for _, option := range options {
		option(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	if v.maxSignatureSize <= 0 {
		v.maxSignatureSize = DefaultMaxSignatureSize
	}
	return v
}

// Verify verifies a hex-encoded COSE_Sign1 signature, optionally using a hex-encoded COSE_Key.
// An empty keyHex means that no key was supplied
func (v *Verifier) Verify(sigHex string, keyHex string) *Result {
	if len(sigHex) > 2*v.maxSignatureSize || len(keyHex) > 2*v.maxSignatureSize {
		return v.formatError(
			fmt.Errorf("%w: input exceeds %d bytes", cose.ErrFormat, v.maxSignatureSize),
		)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return v.formatError(fmt.Errorf("%w: decode signature hex: %w", cose.ErrFormat, err))
	}
	var key []byte
	if keyHex != "" {
		key, err = hex.DecodeString(keyHex)
		if err != nil {
			return v.formatError(fmt.Errorf("%w: decode key hex: %w", cose.ErrFormat, err))
		}
	}
	return v.VerifyBytes(sig, key)
}

// VerifyBytes verifies an encoded COSE_Sign1 signature, optionally using an encoded COSE_Key.
// An empty key means that no key was supplied
func (v *Verifier) VerifyBytes(sig []byte, key []byte) *Result {
	if len(sig) > v.maxSignatureSize || len(key) > v.maxSignatureSize {
		return v.formatError(
			fmt.Errorf("%w: input exceeds %d bytes", cose.ErrFormat, v.maxSignatureSize),
		)
	}
	sign1, err := cose.ParseSign1(sig)
	if err != nil {
		return v.formatError(err)
	}
	publicKey, err := v.resolvePublicKey(sign1, key)
	if err != nil {
		if !errors.Is(err, cose.ErrNoPublicKey) {
			return v.formatError(err)
		}
		if v.strictKeyRequirement {
			v.logger.Debug("no public key found")
			return newInvalidResult(ValidationErrorNoPublicKey, err)
		}
	}
	cosePayload, err := sign1.SigStructure()
	if err != nil {
		return v.formatError(err)
	}
	ret := &Result{
		message:      sign1.Payload,
		signature:    sign1.Signature,
		cosePayload:  cosePayload,
		addressBytes: sign1.Address(),
		hashed:       sign1.Hashed(),
	}
	var addrErr error
	if ret.addressBytes != nil {
		ret.address, addrErr = address.NewAddressFromBytes(ret.addressBytes)
	}
	if publicKey == nil {
		v.logger.Debug("no public key found, skipping signature check")
		ret.err = cose.ErrNoPublicKey
		return ret
	}
	ret.publicKey = publicKey
	if !cose.VerifyEd25519(cosePayload, sign1.Signature, publicKey) {
		v.logger.Debug(
			"signature verification failed",
			"public_key",
			hex.EncodeToString(publicKey),
			"payload_size",
			len(cosePayload),
		)
		ret.err = ErrSignatureInvalid
		return ret
	}
	if ret.addressBytes != nil {
		if err := v.checkAddress(ret.address, addrErr, publicKey); err != nil {
			v.logger.Debug(
				"address check failed",
				"address",
				hex.EncodeToString(ret.addressBytes),
				"error",
				err,
			)
			ret.err = err
			return ret
		}
	}
	ret.valid = true
	return ret
}

func (v *Verifier) formatError(err error) *Result {
	v.logger.Debug("malformed signature", "error", err)
	return newInvalidResult(ValidationErrorFormat, err)
}

// resolvePublicKey returns the public key from an explicitly supplied COSE_Key if there is one,
// and otherwise the key from protected header label 4. Only one source is ever consulted
func (v *Verifier) resolvePublicKey(sign1 *cose.Sign1, explicitKey []byte) ([]byte, error) {
	if len(explicitKey) > 0 {
		key, err := cose.ParseKey(explicitKey)
		if err != nil {
			return nil, err
		}
		return key.PublicKey()
	}
	if keyID := sign1.KeyID(); len(keyID) > 0 {
		return bytes.Clone(keyID), nil
	}
	return nil, cose.ErrNoPublicKey
}

func (v *Verifier) checkAddress(addr *address.Address, addrErr error, publicKey []byte) error {
	if addrErr != nil {
		return fmt.Errorf("decode address: %w", addrErr)
	}
	ok, err := address.VerifyAddressAgainstPublicKey(addr, publicKey)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAddressMismatch
	}
	return nil
}

// VerifyDataSignature verifies the result of a CIP-30 signData call. A missing public key is
// reported as NoPublicKeyError
func VerifyDataSignature(sigHex string, keyHex string) *Result {
	return NewVerifier(WithStrictKeyRequirement(true)).Verify(sigHex, keyHex)
}

// ParseCIP8 parses and verifies a CIP-8 signature. A missing public key yields an invalid result
// with the message, signature and address still available
func ParseCIP8(sigHex string, keyHex string) *Result {
	return NewVerifier(WithStrictKeyRequirement(false)).Verify(sigHex, keyHex)
}

// VerifyAddressAgainstKey reports whether the provided Ed25519 public key produces the address
func VerifyAddressAgainstKey(addr *address.Address, publicKey []byte) (bool, error) {
	return address.VerifyAddressAgainstPublicKey(addr, publicKey)
}
