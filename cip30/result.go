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
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gocip30/address"
)

// ValidationError explains why a signature was not accepted
type ValidationError int

const (
	ValidationErrorUnknown ValidationError = iota
	ValidationErrorFormat
	ValidationErrorNoPublicKey
)

func (v ValidationError) String() string {
	switch v {
	case ValidationErrorFormat:
		return "FormatError"
	case ValidationErrorNoPublicKey:
		return "NoPublicKeyError"
	default:
		return "Unknown"
	}
}

func (v ValidationError) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// MessageFormat selects the text encoding used by the formatted Result accessors
type MessageFormat int

const (
	MessageFormatHex MessageFormat = iota
	MessageFormatText
	MessageFormatBase64
)

func (f MessageFormat) String() string {
	switch f {
	case MessageFormatHex:
		return "hex"
	case MessageFormatText:
		return "text"
	case MessageFormatBase64:
		return "base64"
	default:
		return fmt.Sprintf("MessageFormat(%d)", int(f))
	}
}

// ParseMessageFormat returns the MessageFormat with the provided name
func ParseMessageFormat(name string) (MessageFormat, error) {
	switch strings.ToLower(name) {
	case "hex":
		return MessageFormatHex, nil
	case "text":
		return MessageFormatText, nil
	case "base64":
		return MessageFormatBase64, nil
	default:
		return 0, fmt.Errorf("unknown message format: %s", name)
	}
}

func (f MessageFormat) format(data []byte) string {
	switch f {
	case MessageFormatText:
		return strings.ToValidUTF8(string(data), "\uFFFD")
	case MessageFormatBase64:
		return base64.StdEncoding.EncodeToString(data)
	default:
		return hex.EncodeToString(data)
	}
}

// Result is the outcome of verifying a data signature. A Result is never modified after it is
// returned, and all accessors return copies
type Result struct {
	valid           bool
	validationError ValidationError
	err             error
	message         []byte
	publicKey       []byte
	signature       []byte
	cosePayload     []byte
	addressBytes    []byte
	address         *address.Address
	hashed          bool
}

// newInvalidResult returns a result with a validation error and no extracted fields
func newInvalidResult(validationError ValidationError, err error) *Result {
	return &Result{
		validationError: validationError,
		err:             err,
	}
}

// IsValid reports whether the signature verified and any embedded address matched the public key
func (r *Result) IsValid() bool {
	return r.valid
}

// ValidationError returns the kind of error that prevented verification. It returns false for
// valid results and for results that failed the signature or address check
func (r *Result) ValidationError() (ValidationError, bool) {
	if r.valid || r.validationError == ValidationErrorUnknown {
		return ValidationErrorUnknown, false
	}
	return r.validationError, true
}

// Err returns the reason the result is not valid, or nil for a valid result
func (r *Result) Err() error {
	return r.err
}

// Message returns the signed message, or nil if it could not be extracted
func (r *Result) Message() []byte {
	return bytes.Clone(r.message)
}

// PublicKey returns the Ed25519 public key used for verification
func (r *Result) PublicKey() []byte {
	return bytes.Clone(r.publicKey)
}

// Signature returns the Ed25519 signature
func (r *Result) Signature() []byte {
	return bytes.Clone(r.signature)
}

// CosePayload returns the encoded Sig_structure that the signature covers
func (r *Result) CosePayload() []byte {
	return bytes.Clone(r.cosePayload)
}

// Address returns the raw address bytes claimed in the protected header, or nil if there are none
func (r *Result) Address() []byte {
	return bytes.Clone(r.addressBytes)
}

// IsHashed reports whether the message is a Blake2b-224 hash of the original content
func (r *Result) IsHashed() bool {
	return r.hashed
}

func formatField(data []byte, format MessageFormat) (string, bool) {
	if data == nil {
		return "", false
	}
	return format.format(data), true
}

func (r *Result) MessageAs(format MessageFormat) (string, bool) {
	return formatField(r.message, format)
}

func (r *Result) PublicKeyAs(format MessageFormat) (string, bool) {
	return formatField(r.publicKey, format)
}

func (r *Result) SignatureAs(format MessageFormat) (string, bool) {
	return formatField(r.signature, format)
}

func (r *Result) CosePayloadAs(format MessageFormat) (string, bool) {
	return formatField(r.cosePayload, format)
}

// AddressText returns the Bech32 (or Base58 for Byron) form of the claimed address. It returns
// false when there is no address or the address bytes are not a decodable address
func (r *Result) AddressText() (string, bool) {
	if r.address == nil {
		return "", false
	}
	ret, err := r.address.Text()
	if err != nil {
		return "", false
	}
	return ret, true
}

// AddressHex returns the claimed address bytes as hex
func (r *Result) AddressHex() (string, bool) {
	return formatField(r.addressBytes, MessageFormatHex)
}

// VerifyPayload checks that the provided payload is the content that was signed. For hashed
// messages the Blake2b-224 hash of the payload is compared
func (r *Result) VerifyPayload(payload string) (bool, error) {
	if r.message == nil {
		return false, ErrNoMessage
	}
	if r.hashed {
		hash := address.Blake2b224Hash([]byte(payload))
		return bytes.Equal(r.message, hash.Bytes()), nil
	}
	return bytes.Equal(r.message, []byte(payload)), nil
}

func (r *Result) String() string {
	validationError, _ := r.ValidationError()
	addressText, _ := r.AddressText()
	return fmt.Sprintf(
		"Result{valid=%t, validationError=%s, address=%s, publicKey=%x, signature=%x, message=%x, cosePayload=%x, hashed=%t}",
		r.valid,
		validationError,
		addressText,
		r.publicKey,
		r.signature,
		r.message,
		r.cosePayload,
		r.hashed,
	)
}

type resultJson struct {
	Valid           bool             `json:"valid" yaml:"valid"`
	ValidationError *ValidationError `json:"validationError,omitempty" yaml:"validationError,omitempty"`
	Error           string           `json:"error,omitempty" yaml:"error,omitempty"`
	Message         string           `json:"message,omitempty" yaml:"message,omitempty"`
	MessageText     string           `json:"messageText,omitempty" yaml:"messageText,omitempty"`
	PublicKey       string           `json:"publicKey,omitempty" yaml:"publicKey,omitempty"`
	Signature       string           `json:"signature,omitempty" yaml:"signature,omitempty"`
	CosePayload     string           `json:"cosePayload,omitempty" yaml:"cosePayload,omitempty"`
	Address         string           `json:"address,omitempty" yaml:"address,omitempty"`
	AddressHex      string           `json:"addressHex,omitempty" yaml:"addressHex,omitempty"`
	Hashed          bool             `json:"hashed" yaml:"hashed"`
}

func (r *Result) toJson() resultJson {
	ret := resultJson{
		Valid:  r.valid,
		Hashed: r.hashed,
	}
	if validationError, ok := r.ValidationError(); ok {
		ret.ValidationError = &validationError
	}
	if r.err != nil {
		ret.Error = r.err.Error()
	}
	ret.Message, _ = r.MessageAs(MessageFormatHex)
	ret.MessageText, _ = r.MessageAs(MessageFormatText)
	ret.PublicKey, _ = r.PublicKeyAs(MessageFormatHex)
	ret.Signature, _ = r.SignatureAs(MessageFormatHex)
	ret.CosePayload, _ = r.CosePayloadAs(MessageFormatHex)
	ret.Address, _ = r.AddressText()
	ret.AddressHex, _ = r.AddressHex()
	return ret
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toJson())
}

// MarshalYAML implements the yaml.v3 Marshaler interface
func (r *Result) MarshalYAML() (any, error) {
	return r.toJson(), nil
}
