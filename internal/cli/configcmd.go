package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command, which prints the effective
// merged configuration the lint command would use.
func newConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective merged configuration",
		Long: `Print the effective per-rule configuration as JSON: built-in defaults
merged with the discovered (or explicitly given) configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (overrides discovery)")
	return cmd
}
