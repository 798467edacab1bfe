/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the content of the optional TOML config file. Command line flags
// take precedence over it.
type Config struct {
	LogLevel          string `toml:"log_level"`
	Color             string `toml:"color"`
	WorklistThreshold int    `toml:"worklist_threshold"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Color:    "auto",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", keys[0].String(), path)
	}
	return cfg, nil
}

// Validate checks the values that cannot be fixed up silently.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color mode %q, want auto, on or off", c.Color)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.WorklistThreshold < 0 {
		return fmt.Errorf("worklist_threshold must not be negative, got %d", c.WorklistThreshold)
	}
	return nil
}
