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
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = Blake2b224Size

	AddressNetworkTestnet = 0
	AddressNetworkMainnet = 1

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111

	PrefixAddress = "addr"
	PrefixStake   = "stake"
	testnetSuffix = "_test"
)

// Kind is the layout family of an address, derived from the type nibble of its header
type Kind uint8

const (
	KindBase Kind = iota
	KindPointer
	KindEnterprise
	KindReward
	KindByron
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindPointer:
		return "pointer"
	case KindEnterprise:
		return "enterprise"
	case KindReward:
		return "reward"
	case KindByron:
		return "byron"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// minLength returns the smallest valid length of an address of this kind
func (k Kind) minLength() int {
	switch k {
	case KindBase:
		return 1 + AddressHashSize + AddressHashSize
	case KindPointer:
		// Payment hash followed by at least one byte of each of the three pointer varints
		return 1 + AddressHashSize + 3
	case KindEnterprise, KindReward:
		return 1 + AddressHashSize
	default:
		return 1
	}
}

// ClassifyHeader returns the address kind encoded in the top 4 bits of an address header byte
func ClassifyHeader(header byte) (Kind, error) {
	switch (header & AddressHeaderTypeMask) >> 4 {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeKeyScript, AddressTypeScriptScript:
		return KindBase, nil
	case AddressTypeKeyPointer, AddressTypeScriptPointer:
		return KindPointer, nil
	case AddressTypeKeyNone, AddressTypeScriptNone:
		return KindEnterprise, nil
	case AddressTypeNoneKey, AddressTypeNoneScript:
		return KindReward, nil
	case AddressTypeByron:
		return KindByron, nil
	default:
		return 0, UnknownAddressTypeError{Header: header}
	}
}

// Address is an immutable Cardano address. The textual form is computed on first use and cached,
// so an Address is safe for concurrent use and must not be copied after first use
type Address struct {
	kind     Kind
	data     []byte
	prefix   string
	textOnce sync.Once
	text     string
	textErr  error
}

// NewAddress returns an Address based on the provided bech32/base58 address string
// It detects if the string has mixed case assumes it is a base58 encoded address
// otherwise, it assumes it is bech32 encoded
func NewAddress(addr string) (*Address, error) {
	if addr == "" {
		return nil, errors.New("address cannot be empty")
	}
	if strings.ToLower(addr) != addr {
		// Mixed case detected: Assume Base58 encoding (e.g., Byron addresses)
		decoded := base58.Decode(addr)
		if len(decoded) == 0 {
			return nil, errors.New("invalid base58 address")
		}
		ret, err := newAddress(decoded, "")
		if err != nil {
			return nil, err
		}
		if ret.kind != KindByron {
			return nil, fmt.Errorf(
				"base58 encoding is only valid for byron addresses, found %s address",
				ret.kind,
			)
		}
		return ret, nil
	}
	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return nil, err
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}
	ret, err := newAddress(decoded, hrp)
	if err != nil {
		return nil, err
	}
	// We already have the canonical text form
	ret.textOnce.Do(func() {
		ret.text = addr
	})
	return ret, nil
}

// NewAddressFromBytes returns an Address based on the raw bytes provided. The bech32 prefix is
// derived from the address header
func NewAddressFromBytes(addrBytes []byte) (*Address, error) {
	return newAddress(addrBytes, "")
}

// NewAddressFromParts returns a Shelley Address based on the individual parts of the address that are provided
func NewAddressFromParts(
	addrType uint8,
	networkId uint8,
	paymentAddr []byte,
	stakingAddr []byte,
) (*Address, error) {
	// Validate network ID
	if networkId != AddressNetworkTestnet &&
		networkId != AddressNetworkMainnet {
		return nil, errors.New("invalid network ID")
	}
	if addrType == AddressTypeByron {
		return nil, fmt.Errorf(
			"%w: byron addresses cannot be built from parts",
			ErrUnsupportedAddressType,
		)
	}
	// Build address bytes
	buf := bytes.NewBuffer(nil)
	header := (addrType << 4) | (networkId & AddressHeaderNetworkMask)
	if err := buf.WriteByte(header); err != nil {
		return nil, err
	}
	if _, err := buf.Write(paymentAddr); err != nil {
		return nil, err
	}
	if _, err := buf.Write(stakingAddr); err != nil {
		return nil, err
	}
	return NewAddressFromBytes(buf.Bytes())
}

func newAddress(data []byte, prefix string) (*Address, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidAddressLength)
	}
	kind, err := ClassifyHeader(data[0])
	if err != nil {
		return nil, err
	}
	if len(data) < kind.minLength() {
		return nil, AddressLengthError{
			Kind:     kind,
			Length:   len(data),
			Expected: kind.minLength(),
		}
	}
	a := &Address{
		kind:   kind,
		data:   slices.Clone(data),
		prefix: prefix,
	}
	if a.prefix == "" && kind != KindByron {
		a.prefix = a.generateHRP()
	}
	return a, nil
}

func (a *Address) generateHRP() string {
	var ret string
	if a.kind == KindReward {
		ret = PrefixStake
	} else {
		ret = PrefixAddress
	}
	// Add test_ suffix if not mainnet
	if a.NetworkId() != AddressNetworkMainnet {
		ret += testnetSuffix
	}
	return ret
}

// Kind returns the layout family of the address
func (a *Address) Kind() Kind {
	return a.kind
}

// Type returns the 4-bit address type from the header
func (a *Address) Type() uint8 {
	return (a.data[0] & AddressHeaderTypeMask) >> 4
}

// Header returns the address header byte
func (a *Address) Header() byte {
	return a.data[0]
}

// NetworkId returns the 4-bit network tag from the header. Byron addresses carry no network tag
// in their header and always report mainnet
func (a *Address) NetworkId() uint8 {
	if a.kind == KindByron {
		return AddressNetworkMainnet
	}
	return a.data[0] & AddressHeaderNetworkMask
}

// Prefix returns the bech32 human-readable part used for the address. This is empty for Byron addresses
func (a *Address) Prefix() string {
	return a.prefix
}

// Bytes returns a copy of the underlying bytes for the address
func (a *Address) Bytes() []byte {
	return slices.Clone(a.data)
}

// PaymentKeyHash returns the payment credential hash for base, pointer and enterprise addresses
func (a *Address) PaymentKeyHash() (Blake2b224, bool) {
	switch a.kind {
	case KindBase, KindPointer, KindEnterprise:
		return NewBlake2b224(a.data[1 : 1+AddressHashSize]), true
	default:
		return Blake2b224{}, false
	}
}

// StakeKeyHash returns the stake credential hash for base and reward addresses
func (a *Address) StakeKeyHash() (Blake2b224, bool) {
	switch a.kind {
	case KindBase:
		return NewBlake2b224(
			a.data[1+AddressHashSize : 1+AddressHashSize+AddressHashSize],
		), true
	case KindReward:
		return NewBlake2b224(a.data[1 : 1+AddressHashSize]), true
	default:
		return Blake2b224{}, false
	}
}

// DelegationPart returns the bytes following the payment credential: the stake credential hash
// for base addresses and the encoded chain pointer for pointer addresses. It returns nil for
// other address kinds
func (a *Address) DelegationPart() []byte {
	switch a.kind {
	case KindBase:
		return slices.Clone(
			a.data[1+AddressHashSize : 1+AddressHashSize+AddressHashSize],
		)
	case KindPointer:
		return slices.Clone(a.data[1+AddressHashSize:])
	default:
		return nil
	}
}

// Pointer decodes the chain pointer of a pointer address
func (a *Address) Pointer() (AddressPointer, error) {
	if a.kind != KindPointer {
		return AddressPointer{}, fmt.Errorf(
			"%w: %s address has no chain pointer",
			ErrUnsupportedAddressType,
			a.kind,
		)
	}
	var ret AddressPointer
	if _, err := ret.decode(a.data[1+AddressHashSize:]); err != nil {
		return AddressPointer{}, err
	}
	return ret, nil
}

// Text returns the bech32-encoded version of the address, or base58 for Byron addresses
func (a *Address) Text() (string, error) {
	a.textOnce.Do(func() {
		if a.kind == KindByron {
			// Encode data to base58
			a.text = base58.Encode(a.data)
			return
		}
		// Convert data to base32 and encode as bech32
		convData, err := bech32.ConvertBits(a.data, 8, 5, true)
		if err != nil {
			a.textErr = fmt.Errorf("convert data to base32: %w", err)
			return
		}
		encoded, err := bech32.Encode(a.prefix, convData)
		if err != nil {
			a.textErr = fmt.Errorf("encode data as bech32: %w", err)
			return
		}
		a.text = encoded
	})
	return a.text, a.textErr
}

// String returns the textual form of the address, or an empty string if it cannot be encoded
func (a *Address) String() string {
	ret, _ := a.Text()
	return ret
}

func (a *Address) MarshalJSON() ([]byte, error) {
	text, err := a.Text()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + text + `"`), nil
}

// AddressPointer is the certificate location referenced by a pointer address
type AddressPointer struct {
	Slot      uint64
	TxIndex   uint64
	CertIndex uint64
}

func (a *AddressPointer) decode(data []byte) (int, error) {
	readVarUint := func(buf *bytes.Reader) (uint64, error) {
		var ret uint64
		for range 10 {
			byt, err := buf.ReadByte()
			if err != nil {
				return 0, err
			}
			ret = (ret << 7) | uint64(byt&0x7F)
			if (byt & 0x80) == 0 {
				return ret, nil
			}
		}
		return 0, errors.New("pointer value too large")
	}
	buf := bytes.NewReader(data)
	var err error
	a.Slot, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	a.TxIndex, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	a.CertIndex, err = readVarUint(buf)
	if err != nil {
		return 0, err
	}
	return len(data) - buf.Len(), nil
}

func (a AddressPointer) encode() []byte {
	writeVarUint := func(buf *bytes.Buffer, val uint64) {
		data := []byte{
			byte(val & 0x7F),
		}
		val /= 128
		for val > 0 {
			data = append(
				data,
				byte((val&0x7F)|0x80),
			)
			val /= 128
		}
		slices.Reverse(data)
		buf.Write(data)
	}
	buf := bytes.NewBuffer(nil)
	writeVarUint(buf, a.Slot)
	writeVarUint(buf, a.TxIndex)
	writeVarUint(buf, a.CertIndex)
	return buf.Bytes()
}

// Bytes returns the variable-length encoding of the pointer as used in pointer addresses
func (a AddressPointer) Bytes() []byte {
	return a.encode()
}
