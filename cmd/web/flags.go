package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/job-portal/internal/config"
	"github.com/spec-kit/job-portal/internal/features"
)

func newFlagsCmd(cfg func() *config.Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the effective feature flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := features.FromConfig(cfg().Features)
			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(set.All())
			case "text":
				for _, name := range set.Names() {
					state := "off"
					if set.IsEnabled(name) {
						state = "on"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, state)
				}
				return nil
			default:
				return fmt.Errorf("unknown output %q (want json or text)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or text")
	return cmd
}
