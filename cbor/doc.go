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

// Package cbor provides the CBOR encoding/decoding utilities used to parse COSE structures.
//
// This package wraps github.com/fxamacker/cbor/v2.
//
// # Decoding
//
// Decode reads exactly one data item and reports how many bytes it consumed. Input is treated
// as untrusted: nesting depth and container sizes are bounded and duplicate map keys are
// rejected. DecodeMap, DecodeBytes, DecodeBool, DecodeInt and DecodeList check the major type
// of a RawMessage before decoding it, so a value of the wrong type is an error rather than a
// silent conversion.
//
// # Encoding
//
// EncodeCanonical produces RFC 8949 core deterministic encoding: shortest-form integers and
// lengths, definite-length containers only, and sorted map keys. Anything that is signed or
// verified must be built with EncodeCanonical.
package cbor
