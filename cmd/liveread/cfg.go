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
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudwego/liveread/internal/atm"
)

var cfgCmd = &cobra.Command{
	Use:   "cfg FILE",
	Short: "Render the basic-block graph of a program in Graphviz format",
	Args:  cobra.ExactArgs(1),
	RunE:  runCFG,
}

func init() {
	cfgCmd.Flags().StringP("output", "o", "", "write the graph to this file instead of stdout")
}

func runCFG(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	prog, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	b := atm.CreateGraphBuilder()
	g := b.Build(prog)
	dot := b.Dot(g, prog)
	if g != nil {
		g.Free()
	}

	if output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dot)
		return err
	}
	if err = os.WriteFile(output, []byte(dot+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	logger.Info("graph written", "path", output, "blocks", len(b.Graph))
	return nil
}
