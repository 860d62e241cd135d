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

// Network identifies the chain an address belongs to
type Network struct {
	Id           uint8
	Name         string
	NetworkMagic uint32
}

// Network definitions
var (
	NetworkTestnet = Network{
		Id:           AddressNetworkTestnet,
		Name:         "testnet",
		NetworkMagic: 1097911063,
	}
	NetworkMainnet = Network{
		Id:           AddressNetworkMainnet,
		Name:         "mainnet",
		NetworkMagic: 764824073,
	}
	NetworkPreprod = Network{
		Id:           AddressNetworkTestnet,
		Name:         "preprod",
		NetworkMagic: 1,
	}
	NetworkPreview = Network{
		Id:           AddressNetworkTestnet,
		Name:         "preview",
		NetworkMagic: 2,
	}

	// NetworkInvalid is returned by the lookup functions when no network matches
	NetworkInvalid = Network{
		Id:   0xff,
		Name: "invalid",
	}
)

// Addresses only carry the network id, so the generic testnet comes first among id 0 entries
var networks = []Network{
	NetworkTestnet,
	NetworkMainnet,
	NetworkPreprod,
	NetworkPreview,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkById returns the first predefined network with the given address network id
func NetworkById(id uint8) Network {
	for _, network := range networks {
		if network.Id == id {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByNetworkMagic returns a predefined network by network magic
func NetworkByNetworkMagic(networkMagic uint32) Network {
	for _, network := range networks {
		if network.NetworkMagic == networkMagic {
			return network
		}
	}
	return NetworkInvalid
}

func (n Network) String() string {
	return n.Name
}

// Network returns the network the address belongs to, based on its header
func (a *Address) Network() Network {
	return NetworkById(a.NetworkId())
}
