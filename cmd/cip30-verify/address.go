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

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gocip30/address"
	"github.com/blinklabs-io/gocip30/cip30"
	"github.com/spf13/cobra"
)

type addressCheckResult struct {
	Address string `json:"address" yaml:"address"`
	Kind    string `json:"kind" yaml:"kind"`
	Network string `json:"network" yaml:"network"`
	Match   bool   `json:"match" yaml:"match"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newAddressCmd(opts *globalOptions) *cobra.Command {
	var addrText, keyHex string
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Check that a public key belongs to an address",
		Long: `Rebuild the address that a raw 32-byte Ed25519 public key would produce and compare
it with the provided Bech32 address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addrText == "" || keyHex == "" {
				return errors.New("--address and --key are required")
			}
			addr, err := address.NewAddress(strings.TrimSpace(addrText))
			if err != nil {
				return fmt.Errorf("decode address: %w", err)
			}
			publicKey, err := hex.DecodeString(strings.TrimSpace(keyHex))
			if err != nil {
				return fmt.Errorf("decode key: %w", err)
			}
			ret := addressCheckResult{
				Address: addr.String(),
				Kind:    addr.Kind().String(),
				Network: addr.Network().String(),
			}
			ret.Match, err = cip30.VerifyAddressAgainstKey(addr, publicKey)
			if err != nil {
				ret.Error = err.Error()
				opts.logger.Debug("address check failed", "address", ret.Address, "error", err)
			}
			if err := writeOutput(cmd.OutOrStdout(), opts.config.Output, ret); err != nil {
				return err
			}
			if !ret.Match {
				return errVerificationFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&addrText, "address", "a", "", "Bech32 or Base58 address")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "hex-encoded raw Ed25519 public key")
	return cmd
}
