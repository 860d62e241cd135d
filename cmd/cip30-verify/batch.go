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
	"os"
	"runtime"
	"strings"

	"github.com/blinklabs-io/gocip30/cip30"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchRequest is a single entry of a batch file
type BatchRequest struct {
	Signature string `yaml:"signature"`
	Key       string `yaml:"key"`
}

type batchResult struct {
	Index  int           `json:"index" yaml:"index"`
	Result *cip30.Result `json:"result" yaml:"result"`
}

func loadBatchFile(path string) ([]BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var ret []BatchRequest
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	return ret, nil
}

// verifyBatch verifies all requests concurrently and returns the results in request order
func verifyBatch(verifier *cip30.Verifier, requests []BatchRequest, workers int) []batchResult {
	ret := make([]batchResult, len(requests))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, req := range requests {
		g.Go(func() error {
			ret[i] = batchResult{
				Index: i,
				Result: verifier.Verify(
					strings.TrimSpace(req.Signature),
					strings.TrimSpace(req.Key),
				),
			}
			return nil
		})
	}
	// Verification never returns an error
	_ = g.Wait()
	return ret
}

func newBatchCmd(opts *globalOptions) *cobra.Command {
	var file string
	var lenient bool
	var workers int
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Verify data signatures listed in a YAML file",
		Long: `Verify every entry of a YAML file containing a list of signature/key pairs:

  - signature: 84582aa2...
    key: a4010103...
  - signature: 845846a2...

Entries are verified concurrently and printed in file order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}
			requests, err := loadBatchFile(file)
			if err != nil {
				return err
			}
			// Tag every log line of this run
			logger := opts.logger.With("batch", uuid.NewString())
			logger.Debug("verifying batch", "file", file, "entries", len(requests))
			results := verifyBatch(opts.newVerifier(logger, lenient), requests, workers)
			if err := writeOutput(cmd.OutOrStdout(), opts.config.Output, results); err != nil {
				return err
			}
			invalid := 0
			for _, result := range results {
				if !result.Result.IsValid() {
					invalid++
				}
			}
			logger.Debug("batch complete", "entries", len(results), "invalid", invalid)
			if invalid > 0 {
				return errVerificationFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with signature/key entries")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "do not require a public key")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent verifications (default: number of CPUs)")
	return cmd
}
