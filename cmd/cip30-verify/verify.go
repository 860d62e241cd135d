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
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var signature, key string
	var lenient bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a single data signature",
		Long: `Verify a hex-encoded COSE_Sign1 data signature.

The public key is taken from --key (a hex-encoded COSE_Key) when provided, and
otherwise from the key embedded in the signature. With --lenient, a signature
without any public key is reported as invalid without a NoPublicKeyError.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signature = strings.TrimSpace(signature)
			if signature == "" {
				return errors.New("--signature is required")
			}
			result := opts.newVerifier(opts.logger, lenient).Verify(
				signature,
				strings.TrimSpace(key),
			)
			if err := writeOutput(cmd.OutOrStdout(), opts.config.Output, result); err != nil {
				return err
			}
			if !result.IsValid() {
				return errVerificationFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "hex-encoded COSE_Sign1 signature")
	cmd.Flags().StringVarP(&key, "key", "k", "", "hex-encoded COSE_Key")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "do not require a public key")
	return cmd
}
