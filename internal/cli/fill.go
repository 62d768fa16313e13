package cli

import (
	"github.com/spf13/cobra"

	"github.com/formfill/formfill/pkg/api"
	"github.com/formfill/formfill/pkg/orchestrator"
	"github.com/formfill/formfill/pkg/renderers/tui"
)

func newFillCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Log in and fill the form assigned to your roll number",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}

			client := api.NewClient(cfg.BaseURL,
				api.WithTimeout(cfg.HTTPTimeout),
				api.WithLogger(logger),
			)
			o := orchestrator.New(
				orchestrator.WithClient(client),
				orchestrator.WithRenderer(tui.New()),
				orchestrator.WithLogger(logger),
			)
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the form service address")
	return cmd
}
