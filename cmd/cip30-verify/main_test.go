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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	testSigHex       = "84582aa201276761646472657373581de1b83abf370a14870fdfd6ccb35f8b3e62a68e465ed1e096c5a6f5b9d6a166686173686564f4565468697320697320612074657374206d657373616765584042e2bfc4e1929769a0501b884f66794ae3485860f42c01b70fac37f75e40af074c6b2a61b04c6cf8a493c0dced1455b4f1129dbf653ad9801c52ce49ff6d5a0e"
	testKeyHex       = "a40101032720062158202f1867873147cf53c442435723c17e83beeb8e2153851cd73ccfb1b5e68994a4"
	testOtherKeyHex  = "a4010103272006215820a5f73966e73d0bb9eadc75c5857eafd054a0202d716ac6dde00303ee9c0019e3"
	testPublicKeyHex = "2f1867873147cf53c442435723c17e83beeb8e2153851cd73ccfb1b5e68994a4"
	testAddress      = "stake1uxur40ehpg2gwr7l6mxtxhut8e32drjxtmg7p9k95m6mn4s0tdy6k"
	testNoKeySigHex  = "84582aa201276761646472657373581de19090058641fa866e47d656f62be510cb10a90d48b0aafc868f25291ea166686173686564f458ae7b2270726f706f73616c223a2231366436623066393930663563353266393765323338363235623464356362633138333866326439353334313138313664323466643362613234363364666462222c227265717565737465644174223a223734363935373136222c22766f746572223a227374616b6531757867667170767867386167766d6a383665743076326c397a72393370326764667a6332346c797833756a6a6a3873663678763376227d5840ae514d8d246790d728855f69a0ae32b0c5e59f44e00183b20bf110a42d83fa7c209a290b60a65571648220fc36c4efcb9d472e319bf0afdae42fb078085e4206"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVerifyCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "verify", "--signature", testSigHex, "--key", testKeyHex)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, true, decoded["valid"])
	assert.Equal(t, testAddress, decoded["address"])
	assert.Equal(t, "This is a test message", decoded["messageText"])
}

func TestVerifyCmdInvalid(t *testing.T) {
	stdout, _, err := runCmd(t, "verify", "--signature", testSigHex, "--key", testOtherKeyHex)
	assert.ErrorIs(t, err, errVerificationFailed)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, false, decoded["valid"])
}

func TestVerifyCmdLenient(t *testing.T) {
	stdout, _, err := runCmd(t, "verify", "--signature", testNoKeySigHex, "-o", "yaml")
	assert.ErrorIs(t, err, errVerificationFailed)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "NoPublicKeyError", decoded["validationError"])
	assert.NotContains(t, decoded, "message")

	stdout, _, err = runCmd(t, "verify", "--signature", testNoKeySigHex, "--lenient", "-o", "yaml")
	assert.ErrorIs(t, err, errVerificationFailed)
	decoded = map[string]any{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.NotContains(t, decoded, "validationError")
	assert.Contains(t, decoded, "message")
}

func TestVerifyCmdMissingSignature(t *testing.T) {
	_, _, err := runCmd(t, "verify")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errVerificationFailed)
}

func TestVerifyCmdConfig(t *testing.T) {
	cfgPath := writeFile(
		t,
		"config.yaml",
		"strict: false\noutput: yaml\nlog_level: debug\n",
	)
	stdout, stderr, err := runCmd(t, "--config", cfgPath, "verify", "--signature", testNoKeySigHex)
	assert.ErrorIs(t, err, errVerificationFailed)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.NotContains(t, decoded, "validationError")
	assert.Contains(t, stderr, "no public key found")
	// Flags override the config file
	stdout, _, err = runCmd(t, "--config", cfgPath, "-o", "json", "verify", "--signature", testSigHex, "--key", testKeyHex)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestConfigErrors(t *testing.T) {
	_, _, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "verify", "-s", testSigHex)
	assert.Error(t, err)
	cfgPath := writeFile(t, "config.yaml", "output: [\n")
	_, _, err = runCmd(t, "--config", cfgPath, "verify", "-s", testSigHex)
	assert.Error(t, err)
	_, _, err = runCmd(t, "-o", "xml", "verify", "-s", testSigHex)
	assert.Error(t, err)
	_, _, err = runCmd(t, "--log-level", "loud", "verify", "-s", testSigHex)
	assert.Error(t, err)
	cfgPath = writeFile(t, "config.yaml", "max_signature_size: -1\n")
	_, _, err = runCmd(t, "--config", cfgPath, "verify", "-s", testSigHex)
	assert.Error(t, err)
}

func TestBatchCmd(t *testing.T) {
	batchPath := writeFile(
		t,
		"requests.yaml",
		"- signature: "+testSigHex+"\n  key: "+testKeyHex+"\n"+
			"- signature: "+testSigHex+"\n  key: "+testOtherKeyHex+"\n"+
			"- signature: "+testSigHex+"\n",
	)
	stdout, _, err := runCmd(t, "batch", "--file", batchPath, "--workers", "2")
	assert.ErrorIs(t, err, errVerificationFailed)
	var decoded []struct {
		Index  int            `json:"index"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 3)
	for i, entry := range decoded {
		assert.Equal(t, i, entry.Index)
	}
	assert.Equal(t, true, decoded[0].Result["valid"])
	assert.Equal(t, false, decoded[1].Result["valid"])
	// No explicit key and no key in the header
	assert.Equal(t, "NoPublicKeyError", decoded[2].Result["validationError"])
}

func TestBatchCmdAllValid(t *testing.T) {
	batchPath := writeFile(
		t,
		"requests.yaml",
		"- signature: "+testSigHex+"\n  key: "+testKeyHex+"\n",
	)
	_, stderr, err := runCmd(t, "--log-level", "debug", "batch", "-f", batchPath)
	assert.NoError(t, err)
	assert.Contains(t, stderr, "batch complete")
	assert.Contains(t, stderr, "batch=")
	_, _, err = runCmd(t, "batch")
	assert.Error(t, err)
	_, _, err = runCmd(t, "batch", "-f", writeFile(t, "bad.yaml", "signature: abc\n"))
	assert.Error(t, err)
}

func TestAddressCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "address", "--address", testAddress, "--key", testPublicKeyHex)
	require.NoError(t, err)
	var decoded addressCheckResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.True(t, decoded.Match)
	assert.Equal(t, "reward", decoded.Kind)
	assert.Equal(t, "mainnet", decoded.Network)
	assert.Equal(t, testAddress, decoded.Address)

	stdout, _, err = runCmd(
		t,
		"address",
		"--address",
		testAddress,
		"--key",
		"a5f73966e73d0bb9eadc75c5857eafd054a0202d716ac6dde00303ee9c0019e3",
	)
	assert.ErrorIs(t, err, errVerificationFailed)
	decoded = addressCheckResult{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.False(t, decoded.Match)
	assert.Empty(t, decoded.Error)

	stdout, _, err = runCmd(t, "address", "--address", testAddress, "--key", "0102")
	assert.ErrorIs(t, err, errVerificationFailed)
	decoded = addressCheckResult{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.NotEmpty(t, decoded.Error)

	_, _, err = runCmd(t, "address", "--address", "not-an-address", "--key", testPublicKeyHex)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errVerificationFailed)
}
