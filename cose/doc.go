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

// Package cose parses COSE_Sign1 messages and COSE_Key maps as produced by CIP-8 and CIP-30
// message signing, rebuilds the Sig_structure that was signed, and verifies Ed25519 signatures.
//
// Parsing is strict about the envelope shape and the types of the known protected header
// labels, and never panics on malformed input.
package cose
