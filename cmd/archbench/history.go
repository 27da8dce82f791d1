package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"archbench/internal/history"
)

var historyLimit int

// newHistoryStoreFunc allows mocking in tests.
var newHistoryStoreFunc = func(path string) (*history.Store, error) {
	return history.NewStore(path)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded benchmark runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := newHistoryStoreFunc(viper.GetString("history_db"))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to query run history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tARCH\tSUITE\tBENCHMARKS\tFILE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Machine, e.Suite, e.Benchmarks, e.ResultPath)
	}
	return w.Flush()
}
