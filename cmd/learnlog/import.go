package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/fixtures"
	"github.com/BrandonDHaskell/learnlog/internal/learnlog/service"
	"github.com/BrandonDHaskell/learnlog/internal/logging"
)

func newImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk import interactions from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Debug, cfg.IsDev())

			reqs, err := fixtures.LoadFile(file)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := service.NewInteractionService(a.store).Import(cmd.Context(), reqs)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d interactions\n", n, len(reqs))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with an interactions list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
