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
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cloudwego/liveread"
)

var (
	conf   Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "liveread",
	Short:             "Live-read analysis for instruction streams",
	Long:              `liveread reports which variables may still be read, before being overwritten, from a position of an assembled instruction stream.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(disCmd)
	rootCmd.AddCommand(cfgCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file, lets the flags override it, and prepares the
// logger and color mode for every sub-command.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	path, _ := cmd.Flags().GetString("config")

	if conf, err = loadConfig(path); err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		conf.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("color"); v != "" {
		conf.Color = v
	}
	conf.LogLevel = strings.ToLower(conf.LogLevel)
	if err = conf.Validate(); err != nil {
		return err
	}

	switch conf.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	if conf.WorklistThreshold != 0 {
		liveread.SetWorklistThreshold(conf.WorklistThreshold)
	}

	logger = newLogger(conf.LogLevel)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lv = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

func loadProgram(path string) (liveread.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	prog, err := liveread.Assemble(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", path, err)
	}
	logger.Debug("program loaded", "path", path, "instructions", len(prog))
	return prog, nil
}
