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
	"testing"
)

func FuzzNewAddressFromBytes(f *testing.F) {
	f.Add([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	// Enterprise address with zero payment hash
	f.Add(append([]byte{0x61}, make([]byte, 28)...))
	// Pointer address with truncated pointer
	f.Add(append([]byte{0x41}, bytes.Repeat([]byte{0x80}, 34)...))

	f.Fuzz(func(t *testing.T, data []byte) {
		addr, err := NewAddressFromBytes(data)
		if err != nil {
			return
		}
		// Should not panic on any accepted address
		_ = addr.String()
		_, _ = addr.Pointer()
		_, _ = addr.PaymentKeyHash()
		_, _ = addr.StakeKeyHash()
		_, _ = VerifyAddressAgainstPublicKey(addr, make([]byte, 32))
	})
}

func FuzzNewAddress(f *testing.F) {
	f.Add(
		"addr1qytna5k2fq9ler0fuk45j7zfwv7t2zwhp777nvdjqqfr5tz8ztpwnk8zq5ngetcz5k5mckgkajnygtsra9aej2h3ek5seupmvd",
	)
	f.Add("stake1uxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4s0tdy6k")
	f.Add("Ae2tdPwUPEZ18ZjTLnLVr9CEvUEUXwFhNVyRn867GQ")
	f.Add("invalid_address_string")

	f.Fuzz(func(t *testing.T, addr string) {
		// Should not panic on any input - that's the test
		_, _ = NewAddress(addr)
	})
}
