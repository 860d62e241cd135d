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

// Package address decodes Cardano addresses and checks them against Ed25519 public keys.
//
// The top 4 bits of the header byte select the address layout:
//
//	0-3   base        header | payment hash (28) | stake hash (28)
//	4-5   pointer     header | payment hash (28) | chain pointer (varints)
//	6-7   enterprise  header | payment hash (28)
//	8     byron       CBOR, treated as opaque
//	14-15 reward      header | stake hash (28)
//
// The low 4 bits carry the network ID. All credential hashes are Blake2b-224 digests.
package address
