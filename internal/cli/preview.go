package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formfill/formfill/internal/loader"
	"github.com/formfill/formfill/pkg/session"
)

func newPreviewCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the sections and fields of a schema document without filling it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				return errors.New("--source is required (file path or URL, JSON or YAML)")
			}
			if _, _, err := setup(); err != nil {
				return err
			}

			form, err := loader.New().Load(cmd.Context(), source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, form.FormTitle)
			for i, section := range form.Sections {
				fmt.Fprintf(out, "\nSection %d of %d: %s\n", i+1, len(form.Sections), section.Title)
				if section.Description != "" {
					fmt.Fprintf(out, "  %s\n", section.Description)
				}
				for _, field := range section.Fields {
					required := ""
					if field.Required {
						required = " (required)"
					}
					fmt.Fprintf(out, "  - %s [%s]%s: %s\n", field.FieldID, field.Type, required, session.FormatValue(field.EmptyValue()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "schema document path or URL")
	return cmd
}
