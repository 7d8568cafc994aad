package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskup/internal/app"
	"github.com/fastygo/taskup/repository"
	"github.com/fastygo/taskup/usecase/views"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print task and leaderboard totals",
	Long: `Print task and leaderboard totals from the configured store.

The store is opened read-only: missing collections are reported with their
defaults but nothing is written back. With the bolt driver the database file
is locked by a running "taskup serve", so stop the server first or use the
redis or postgres driver.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	kv, err := app.OpenStore(cmd.Context(), cfg, nil, zapLogger)
	if err != nil {
		return err
	}
	defer kv.Close()

	stores, err := app.LoadStores(cmd.Context(), repository.ReadOnly(kv), app.StoreOptionsFrom(cfg, zapLogger))
	if err != nil {
		return err
	}
	return renderStats(cmd.OutOrStdout(), stores.Views.Analytics(), statsJSON)
}

func renderStats(w io.Writer, a views.Analytics, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Tasks\t%d\n", a.Summary.Tasks)
	fmt.Fprintf(tw, "Completed\t%d\n", a.Summary.Completed)
	fmt.Fprintf(tw, "Pending\t%d\n", a.Summary.Pending)
	fmt.Fprintf(tw, "Participants\t%d\n", a.Summary.Participants)
	fmt.Fprintf(tw, "Total points\t%d\n", a.Summary.TotalPoints)
	if len(a.BySubject) > 0 {
		fmt.Fprintln(tw, "\nSubject\tTasks")
		for _, b := range a.BySubject {
			fmt.Fprintf(tw, "%s\t%d\n", b.Name, b.Value)
		}
	}
	if len(a.TopParticipants) > 0 {
		fmt.Fprintln(tw, "\nParticipant\tPoints")
		for _, p := range a.TopParticipants {
			fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Points)
		}
	}
	return tw.Flush()
}
