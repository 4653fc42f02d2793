package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhammadolammi/skillchecker/internal/skills"
)

var (
	rolesFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "skillchecker",
	Short:         "Score a résumé against a job role's skills",
	Long:          "skillchecker extracts the text of a résumé (PDF, DOCX or plain text) and reports which target skills it mentions and what percentage of them matched.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rolesFile, "roles-file", "", "YAML file with job role profiles (default $SKILLCHECK_ROLES_FILE or the built-in roles)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCatalog returns the catalog named by --roles-file or
// SKILLCHECK_ROLES_FILE, falling back to the built-in roles.
func loadCatalog() (*skills.Catalog, error) {
	path := rolesFile
	if path == "" {
		path = os.Getenv("SKILLCHECK_ROLES_FILE")
	}
	if path == "" {
		return skills.DefaultCatalog(), nil
	}
	return skills.LoadCatalog(path)
}
