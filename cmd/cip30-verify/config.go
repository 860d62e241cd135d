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
	"fmt"
	"os"

	"github.com/blinklabs-io/gocip30/cip30"
	"gopkg.in/yaml.v3"
)

const (
	outputJson = "json"
	outputYaml = "yaml"
)

type Config struct {
	Strict           bool   `yaml:"strict"`
	MaxSignatureSize int    `yaml:"max_signature_size"`
	Output           string `yaml:"output"`
	LogLevel         string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Strict:           true,
		MaxSignatureSize: cip30.DefaultMaxSignatureSize,
		Output:           outputJson,
		LogLevel:         "info",
	}
}

// LoadConfig returns the default config overlaid with the values from the provided YAML file.
// An empty path returns the defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output {
	case outputJson, outputYaml:
	default:
		return fmt.Errorf("invalid output format: %s", c.Output)
	}
	if c.MaxSignatureSize <= 0 {
		return fmt.Errorf("invalid max_signature_size: %d", c.MaxSignatureSize)
	}
	return nil
}
