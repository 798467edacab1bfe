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
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cloudwego/liveread"
	"github.com/cloudwego/liveread/debug"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Print the live-read set at a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var disCmd = &cobra.Command{
	Use:   "dis FILE",
	Short: "Disassemble a program with instruction positions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), prog.Disassemble())
		return err
	},
}

func init() {
	analyzeCmd.Flags().Int("start", 0, "position to start the analysis at")
	analyzeCmd.Flags().Int("stop", -1, "exclusive upper bound of the exploration, -1 means the end")
	analyzeCmd.Flags().Bool("worklist", false, "use the explicit-stack walker")
	analyzeCmd.Flags().Bool("stats", false, "print analysis statistics")
	analyzeCmd.Flags().Bool("dump", false, "dump the branch cache to stderr")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var st debug.Stats
	start, _ := cmd.Flags().GetInt("start")
	stop, _ := cmd.Flags().GetInt("stop")
	worklist, _ := cmd.Flags().GetBool("worklist")
	stats, _ := cmd.Flags().GetBool("stats")
	dump, _ := cmd.Flags().GetBool("dump")

	prog, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	options := []liveread.Option{
		liveread.WithStop(stop),
		liveread.WithWorklist(worklist),
		liveread.WithLogger(logger),
		liveread.WithStats(&st),
	}
	if dump {
		options = append(options, liveread.WithDump(os.Stderr))
	}

	reads, err := liveread.Analyze(prog, start, options...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printReads(out, start, reads)
	if stats {
		printStats(out, st)
	}
	return nil
}

func printReads(w io.Writer, start int, reads liveread.Set) {
	names := reads.Sorted()
	green := color.New(color.FgGreen).SprintFunc()
	for i, name := range names {
		names[i] = green(name)
	}
	fmt.Fprintf(w, "live reads at %d: {%s}\n", start, strings.Join(names, ", "))
}

func printStats(w io.Writer, st debug.Stats) {
	dim := color.New(color.Faint).SprintfFunc()
	fmt.Fprintln(w, dim("walks=%d depth=%d worklist=%t", st.Walks, st.MaxDepth, st.Worklist))
	fmt.Fprintln(w, dim("cache hit=%d miss=%d size=%d", st.Cache.Hit, st.Cache.Miss, st.Cache.Size))
}
