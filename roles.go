package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muhammadolammi/skillchecker/internal/skills"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the job roles and their skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		return renderRoles(cmd.OutOrStdout(), catalog)
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func renderRoles(w io.Writer, catalog *skills.Catalog) error {
	for _, p := range catalog.Profiles() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Name, strings.Join(p.Skills, ", ")); err != nil {
			return err
		}
	}
	return nil
}
