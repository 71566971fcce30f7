package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/logging"
)

func newListCommand() *cobra.Command {
	var itemID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored interactions as JSON lines",
		Long: `Print stored interactions, one JSON object per line, in the order they were
recorded. With --item-id only interactions with that exact item are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Debug, cfg.IsDev())

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			var filter *int64
			if cmd.Flags().Changed("item-id") {
				filter = &itemID
			}

			logs, err := service.NewInteractionService(a.store).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, l := range logs {
				if err := enc.Encode(l); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&itemID, "item-id", 0, "Only print interactions with this item id")
	return cmd
}
