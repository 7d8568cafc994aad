package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskup/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
}

var seedParticipantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "Replace the leaderboard with the sample participants",
	Long: `Replace the leaderboard with the sample participants.

Loading the store writes defaults for any collection that is missing, as
"taskup serve" does on startup. With the bolt driver the database file is
locked by a running server, so stop it first.`,
	Args: cobra.NoArgs,
	RunE: runSeedParticipants,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedParticipantsCmd)
}

func runSeedParticipants(cmd *cobra.Command, _ []string) error {
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

	stores, err := app.LoadStores(cmd.Context(), kv, app.StoreOptionsFrom(cfg, zapLogger))
	if err != nil {
		return err
	}
	rows, out := stores.Participants.LoadSample(cmd.Context())
	if out.PersistErr != nil {
		return out.PersistErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d participants\n", len(rows))
	return nil
}
