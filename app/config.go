package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takapay/takapay/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	configCmd.Flags().BoolVar(&asJSON, "json", false, "Dump config as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	asJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			var out string

			if asJSON {
				out, err = config.DumpConfigJSON(c)
			} else {
				out, err = config.DumpConfig(c)
			}

			if err != nil {
				return err
			}

			fmt.Print(out)

			return nil
		},
	}
)
