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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgram = `
    bt      other
    ldl     a
    ret
other:
    ldl     b
    ret
`

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "liveread.toml", "log_level = \"debug\"\ncolor = \"off\"\nworklist_threshold = 64\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "debug", Color: "off", WorklistThreshold: 64}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeFile(t, "liveread.toml", "colour = \"on\"\n")
	_, err := loadConfig(path)
	require.ErrorContains(t, err, "colour")
}

func TestConfig_Validate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Color = "sometimes"
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.WorklistThreshold = -1
	require.Error(t, cfg.Validate())
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeFile(t, "prog.s", testProgram)
	out, err := execute(t, "analyze", path, "--start", "0", "--stop=-1", "--color", "off", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "live reads at 0: {a, b}")
	assert.Contains(t, out, "cache hit=0 miss=2 size=3")
}

func TestAnalyzeCommand_Stop(t *testing.T) {
	path := writeFile(t, "prog.s", testProgram)
	out, err := execute(t, "analyze", path, "--start", "1", "--stop", "2", "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "live reads at 1: {}")
}

func TestAnalyzeCommand_Malformed(t *testing.T) {
	path := writeFile(t, "prog.s", "bt end\nret\nend:\n")
	_, err := execute(t, "analyze", path, "--start", "0", "--stop=-1", "--color", "off")
	require.ErrorContains(t, err, "position 0")
}

func TestDisCommand(t *testing.T) {
	path := writeFile(t, "prog.s", testProgram)
	out, err := execute(t, "dis", path, "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "   0    bt      L_3")
	assert.Contains(t, out, "L_3:")
}

func TestCFGCommand(t *testing.T) {
	path := writeFile(t, "prog.s", testProgram)
	dot := filepath.Join(t.TempDir(), "prog.gv")
	_, err := execute(t, "cfg", path, "-o", dot, "--color", "off")
	require.NoError(t, err)
	buf, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "digraph CFG {")
	assert.Contains(t, string(buf), `BB_1 -> BB_3 [ color = "green", label = "taken" ]`)
}
