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
	"crypto/ed25519"
	"errors"
	"fmt"
)

// VerifyAddressAgainstPublicKey reconstructs the address that the provided Ed25519 public key
// would produce and compares it with the claimed address.
//
// The key hash replaces the payment credential of base, pointer and enterprise addresses, keeping
// the claimed delegation part, and replaces the stake credential of reward addresses. The
// reconstructed address is encoded with the claimed address prefix and the two textual forms are
// compared. Byron addresses cannot be reconstructed from a key and return ErrUnsupportedAddressType.
func VerifyAddressAgainstPublicKey(addr *Address, publicKey []byte) (bool, error) {
	if addr == nil {
		return false, errors.New("address cannot be nil")
	}
	if len(publicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf(
			"%w: %d",
			ErrInvalidPublicKeyLength,
			len(publicKey),
		)
	}
	keyHash := Blake2b224Hash(publicKey)
	rebuilt := make([]byte, 0, len(addr.data))
	rebuilt = append(rebuilt, addr.Header())
	switch addr.Kind() {
	case KindReward:
		rebuilt = append(rebuilt, keyHash.Bytes()...)
	case KindBase, KindPointer:
		rebuilt = append(rebuilt, keyHash.Bytes()...)
		rebuilt = append(rebuilt, addr.DelegationPart()...)
	case KindEnterprise:
		rebuilt = append(rebuilt, keyHash.Bytes()...)
	default:
		return false, fmt.Errorf(
			"%w: cannot derive %s address from public key",
			ErrUnsupportedAddressType,
			addr.Kind(),
		)
	}
	rebuiltAddr, err := newAddress(rebuilt, addr.Prefix())
	if err != nil {
		return false, err
	}
	rebuiltText, err := rebuiltAddr.Text()
	if err != nil {
		return false, err
	}
	claimedText, err := addr.Text()
	if err != nil {
		return false, err
	}
	return rebuiltText == claimedText, nil
}
