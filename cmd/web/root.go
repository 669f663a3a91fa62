package main

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/job-portal/internal/config"
)

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "job-portal",
		Short: "Job roles web front end",
		Long: `job-portal renders the job roles site and proxies every data operation
to the backend API configured by API_BASE_URL.

Example usage:
  job-portal                   # Serve HTTP (same as "job-portal serve")
  job-portal flags             # Print the effective feature flags
  job-portal verify-token TOK  # Decode a session token with JWT_SECRET`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if cfg.App.Version == "dev" {
				cfg.App.Version = version
			}
			return nil
		},
	}

	current := func() *config.Config { return cfg }
	serve := newServeCmd(current)
	root.RunE = serve.RunE
	root.AddCommand(serve, newFlagsCmd(current), newVerifyTokenCmd(current))
	return root
}
