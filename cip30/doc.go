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

// Package cip30 verifies the data signatures returned by the CIP-30 signData wallet call and
// other CIP-8 message signatures.
//
// Verification runs as a fixed sequence of stages: the COSE_Sign1 envelope is parsed, the public
// key is resolved, the Ed25519 signature over the Sig_structure is checked, and any address
// claimed in the protected header is checked against the public key. The first failing stage
// determines the Result. No error escapes a call to Verify; callers always receive a Result.
//
// The public key is taken from an explicitly supplied COSE_Key when one is given, and otherwise
// from protected header label 4. When neither is present, a strict verifier (the default)
// reports ValidationErrorNoPublicKey, while a lenient verifier returns an invalid Result that
// still carries the extracted message, signature and address.
package cip30
