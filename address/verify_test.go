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
	"testing"

	"github.com/blinklabs-io/gocip30/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Blake2b-224 of this key is testKeyHashHex
	testPublicKeyHex  = "2f1867873147cf53c442435723c17e83beeb8e2153851cd73ccfb1b5e68994a4"
	otherPublicKeyHex = "a5f73966e73d0bb9eadc75c5857eafd054a0202d716ac6dde00303ee9c0019e3"
)

func TestBlake2b224Hash(t *testing.T) {
	hash := Blake2b224Hash(test.DecodeHexString(testPublicKeyHex))
	assert.Equal(t, testKeyHashHex, hash.String())
	hash = Blake2b224Hash(
		test.DecodeHexString(
			"c4821499cef96eda9c00cdd0bfbcd2abf7d09436ad424ac7288653a8b4252014",
		),
	)
	assert.Equal(
		t,
		"1d813fd4ab9c1e5f7a35da16f75c2e664edfb2a127fc17a4a7ebbfee",
		hash.String(),
	)
}

func TestVerifyAddressAgainstPublicKey(t *testing.T) {
	testDefs := []struct {
		name      string
		address   string
		publicKey string
		expected  bool
	}{
		{
			name:      "reward mainnet",
			address:   "stake1uxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4s0tdy6k",
			publicKey: testPublicKeyHex,
			expected:  true,
		},
		{
			name:      "reward testnet",
			address:   "stake_test1uqwcz0754wwpuhm6xhdpda6u9enyahaj5ynlc9ay5l4mlms4pyqyg",
			publicKey: "c4821499cef96eda9c00cdd0bfbcd2abf7d09436ad424ac7288653a8b4252014",
			expected:  true,
		},
		{
			name:      "base mainnet",
			address:   "addr1qxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4j07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0ldvnn",
			publicKey: testPublicKeyHex,
			expected:  true,
		},
		{
			name:      "base testnet",
			address:   "addr_test1qzur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4j07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9wsvfsvlv",
			publicKey: testPublicKeyHex,
			expected:  true,
		},
		{
			name:      "enterprise",
			address:   "addr1vxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4snpdzxy",
			publicKey: testPublicKeyHex,
			expected:  true,
		},
		{
			name:      "pointer",
			address:   "addr1gxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn45pnz75xxcrjdgglh",
			publicKey: testPublicKeyHex,
			expected:  true,
		},
		{
			name:      "reward with other key",
			address:   "stake1uxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4s0tdy6k",
			publicKey: otherPublicKeyHex,
			expected:  false,
		},
		{
			name:      "base with other payment key",
			address:   "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
			publicKey: testPublicKeyHex,
			expected:  false,
		},
		{
			name:      "enterprise with other key",
			address:   "addr1vxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4snpdzxy",
			publicKey: otherPublicKeyHex,
			expected:  false,
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddress(testDef.address)
		require.NoError(t, err, testDef.name)
		ok, err := VerifyAddressAgainstPublicKey(
			addr,
			test.DecodeHexString(testDef.publicKey),
		)
		require.NoError(t, err, testDef.name)
		assert.Equal(t, testDef.expected, ok, testDef.name)
	}
}

func TestVerifyAddressAgainstPublicKeyFromBytes(t *testing.T) {
	// Addresses built from raw bytes derive their prefix from the header
	addr, err := NewAddressFromBytes(test.DecodeHexString("e1" + testKeyHashHex))
	require.NoError(t, err)
	ok, err := VerifyAddressAgainstPublicKey(addr, test.DecodeHexString(testPublicKeyHex))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAddressAgainstPublicKeyErrors(t *testing.T) {
	byron, err := NewAddress(
		"DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
	)
	require.NoError(t, err)
	ok, err := VerifyAddressAgainstPublicKey(byron, test.DecodeHexString(testPublicKeyHex))
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedAddressType)

	reward, err := NewAddress("stake1uxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4s0tdy6k")
	require.NoError(t, err)
	ok, err = VerifyAddressAgainstPublicKey(reward, []byte{0x01, 0x02})
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidPublicKeyLength)

	ok, err = VerifyAddressAgainstPublicKey(nil, test.DecodeHexString(testPublicKeyHex))
	assert.False(t, ok)
	assert.Error(t, err)
}
