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

import "log/slog"

// DefaultMaxSignatureSize is the default limit for the decoded size of a signature or key blob
const DefaultMaxSignatureSize = 64 * 1024

type VerifierOptionFunc func(*Verifier)

// WithLogger specifies the logger used for verification diagnostics
func WithLogger(logger *slog.Logger) VerifierOptionFunc {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithStrictKeyRequirement specifies whether a missing public key is reported as NoPublicKeyError.
// When disabled, a signature without a key yields an invalid result that still carries the
// extracted message, signature, payload and address
func WithStrictKeyRequirement(strict bool) VerifierOptionFunc {
	return func(v *Verifier) {
		v.strictKeyRequirement = strict
	}
}

// WithMaxSignatureSize specifies the maximum decoded size in bytes of a signature or key blob.
// Larger inputs are rejected as a format error before decoding
func WithMaxSignatureSize(size int) VerifierOptionFunc {
	return func(v *Verifier) {
		v.maxSignatureSize = size
	}
}
