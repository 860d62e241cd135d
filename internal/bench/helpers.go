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

// Package bench provides signature fixtures shared by the verification benchmarks.
package bench

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gocip30/address"
	"github.com/blinklabs-io/gocip30/cose"
	"github.com/blinklabs-io/gocip30/internal/test"
)

// SignatureFixture holds a COSE_Sign1 envelope and its COSE_Key in hex form, as a wallet would
// return them
type SignatureFixture struct {
	Name      string
	Signature string
	Key       string
	// Valid reports whether strict verification is expected to succeed
	Valid bool
}

const (
	walletSigHex = "84582aa201276761646472657373581de1b83abf370a14870fdfd6ccb35f8b3e62a68e465ed1e096c5a6f5b9d6a166686173686564f4565468697320697320612074657374206d657373616765584042e2bfc4e1929769a0501b884f66794ae3485860f42c01b70fac37f75e40af074c6b2a61b04c6cf8a493c0dced1455b4f1129dbf653ad9801c52ce49ff6d5a0e"
	walletKeyHex = "a40101032720062158202f1867873147cf53c442435723c17e83beeb8e2153851cd73ccfb1b5e68994a4"

	emptyMessageSigHex = "84582aa201276761646472657373581de01d813fd4ab9c1e5f7a35da16f75c2e664edfb2a127fc17a4a7ebbfeea166686173686564f44058406ad1822a992684ed10c2802f2c689516254511e92559f19d5288df96f05d002c560d02e0130f73fe2c762170b185d9f9193c3e1efec5f599cb99dfee662d4f0e"
	emptyMessageKeyHex = "a4010103272006215820c4821499cef96eda9c00cdd0bfbcd2abf7d09436ad424ac7288653a8b4252014"

	largePayloadSize = 16 * 1024
)

// FixtureNames returns the names accepted by LoadSignatureFixture
func FixtureNames() []string {
	return []string{
		"wallet",
		"empty-message",
		"header-key",
		"large-payload",
		"tampered",
	}
}

// LoadSignatureFixture returns the named signature fixture. Names are case insensitive
func LoadSignatureFixture(name string) (*SignatureFixture, error) {
	ret := &SignatureFixture{
		Name:  strings.ToLower(name),
		Valid: true,
	}
	switch ret.Name {
	case "wallet":
		ret.Signature = walletSigHex
		ret.Key = walletKeyHex
	case "empty-message":
		ret.Signature = emptyMessageSigHex
		ret.Key = emptyMessageKeyHex
	case "header-key":
		// Public key carried in the protected header instead of a COSE_Key
		ret.Signature = signedFixture(0x11, []byte("header key message"), true)
	case "large-payload":
		ret.Signature = signedFixture(0x22, make([]byte, largePayloadSize), false)
		ret.Key = test.CoseKeyHex(test.PublicKey(test.Ed25519Key(0x22)))
	case "tampered":
		sig := test.DecodeHexString(walletSigHex)
		// Flip a bit in the last signature byte
		sig[len(sig)-1] ^= 0x01
		ret.Signature = hex.EncodeToString(sig)
		ret.Key = walletKeyHex
		ret.Valid = false
	default:
		return nil, fmt.Errorf("unknown signature fixture: %s", name)
	}
	return ret, nil
}

// MustLoadSignatureFixture loads a signature fixture and panics on error
func MustLoadSignatureFixture(name string) *SignatureFixture {
	fixture, err := LoadSignatureFixture(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load signature fixture: %v", err))
	}
	return fixture
}

// signedFixture signs payload with a deterministic key and a matching mainnet reward address
func signedFixture(seed byte, payload []byte, keyInHeader bool) string {
	key := test.Ed25519Key(seed)
	publicKey := test.PublicKey(key)
	addr, err := address.NewAddressFromParts(
		address.AddressTypeNoneKey,
		address.AddressNetworkMainnet,
		address.Blake2b224Hash(publicKey).Bytes(),
		nil,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build fixture address: %v", err))
	}
	protected := map[any]any{
		cose.HeaderLabelAddress: addr.Bytes(),
	}
	if keyInHeader {
		protected[cose.HeaderLabelKeyID] = publicKey
	}
	return hex.EncodeToString(
		test.SignSign1(key, protected, map[any]any{cose.HeaderLabelHashed: false}, payload),
	)
}
