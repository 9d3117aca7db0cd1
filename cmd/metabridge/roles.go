package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"metabridge/internal/taxonomy"
)

func newRolesCmd() *cobra.Command {
	var file string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the legacy role to slug mapping",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := firstNonEmpty(file, os.Getenv("ROLE_TAXONOMY_FILE"))
			roles := taxonomy.Default()
			if strings.TrimSpace(path) != "" {
				var err error
				if roles, err = taxonomy.LoadFile(path); err != nil {
					return err
				}
			}
			entries := roles.Entries()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEGACY\tSLUG\tINSTITUTIONAL")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", e.Legacy, e.Role.Slug, e.Role.Institutional)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML taxonomy extension (default: ROLE_TAXONOMY_FILE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
