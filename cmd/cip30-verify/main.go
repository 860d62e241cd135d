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
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/gocip30/cip30"
	"github.com/spf13/cobra"
)

const programName = "cip30-verify"

// errVerificationFailed is returned by commands when at least one verification was not valid.
// The results have already been printed, so only the exit code is affected
var errVerificationFailed = errors.New("verification failed")

type globalOptions struct {
	configPath string
	logLevel   string
	output     string
	config     *Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errVerificationFailed) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", programName, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Verify CIP-8 / CIP-30 data signatures",
		Long: `Verify the COSE_Sign1 data signatures produced by the CIP-30 signData wallet call.

Examples:
  # Verify a signature with the COSE_Key returned by the wallet
  cip30-verify verify --signature 84582aa2... --key a4010103...

  # Verify many signatures from a YAML file
  cip30-verify batch --file requests.yaml --output yaml

  # Check that a public key belongs to an address
  cip30-verify address --address stake1u... --key 2f186787...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(
		&opts.configPath,
		"config",
		"",
		"path to YAML config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&opts.logLevel,
		"log-level",
		"",
		"log level (debug, info, warn, error)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&opts.output,
		"output",
		"o",
		"",
		"output format (json or yaml)",
	)
	rootCmd.AddCommand(
		newVerifyCmd(opts),
		newBatchCmd(opts),
		newAddressCmd(opts),
	)
	return rootCmd
}

func (o *globalOptions) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	// Command line flags override the config file
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	o.config = cfg
	o.logger = slog.New(
		slog.NewTextHandler(
			cmd.ErrOrStderr(),
			&slog.HandlerOptions{Level: level},
		),
	)
	return nil
}

func (o *globalOptions) newVerifier(logger *slog.Logger, lenient bool) *cip30.Verifier {
	return cip30.NewVerifier(
		cip30.WithLogger(logger),
		cip30.WithStrictKeyRequirement(o.config.Strict && !lenient),
		cip30.WithMaxSignatureSize(o.config.MaxSignatureSize),
	)
}
