package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"archbench/internal/bench"
)

var envJSON bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the machine and runtime metadata this binary records",
	Long: `Prints the metadata an archbench run would attach to a results file:
the normalized architecture this binary executes as, the Go runtime
version, CPU counts, and any thread-limit environment variables. The
matrix driver uses 'env --json' to verify a runner binary's architecture
before trusting its results.`,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolVar(&envJSON, "json", false, "Emit metadata as JSON")
}

func runEnv(cmd *cobra.Command, args []string) error {
	meta := bench.DefaultMetadata()

	if envJSON {
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, meta[k])
	}
	return nil
}
