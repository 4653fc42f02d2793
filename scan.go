package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhammadolammi/skillchecker/internal/extract"
	"github.com/muhammadolammi/skillchecker/internal/scan"
	"github.com/muhammadolammi/skillchecker/internal/skills"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a résumé for a role's skills or a custom skill list",
	Long:  "Reads a résumé from disk or from an R2 bucket, extracts its text and reports the matched skills and the match percentage. Custom skills take precedence over --role.",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

type scanOptions struct {
	File        string
	R2Key       string
	Role        string
	Skills      string
	ContentType string
	JSON        bool
}

var scanOpts scanOptions

func init() {
	scanCmd.Flags().StringVarP(&scanOpts.File, "file", "f", "", "Path to the résumé file")
	scanCmd.Flags().StringVar(&scanOpts.R2Key, "r2-key", "", "Object key of the résumé in the R2 bucket")
	scanCmd.Flags().StringVarP(&scanOpts.Role, "role", "r", "", "Job role to score against (see the roles command)")
	scanCmd.Flags().StringVarP(&scanOpts.Skills, "skills", "s", "", "Comma-separated custom skills, e.g. \"react, node, Sql\"")
	scanCmd.Flags().StringVar(&scanOpts.ContentType, "content-type", "", "Document content type (default: guessed from the file extension)")
	scanCmd.Flags().BoolVar(&scanOpts.JSON, "json", false, "Print the full report as JSON")
	scanCmd.MarkFlagsMutuallyExclusive("file", "r2-key")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if scanOpts.File == "" && scanOpts.R2Key == "" {
		return fmt.Errorf("one of --file or --r2-key is required: %w", scan.ErrNoFileSelected)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	name, data, err := readInput(ctx, scanOpts)
	if err != nil {
		return err
	}

	return scanDocument(ctx, cmd.OutOrStdout(), catalog, logger, name, data, scanOpts)
}

// readInput loads the résumé bytes named by the options into memory.
func readInput(ctx context.Context, opts scanOptions) (string, []byte, error) {
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read %s: %w", opts.File, err)
		}
		return filepath.Base(opts.File), data, nil
	}

	r2, err := loadR2Config()
	if err != nil {
		return "", nil, err
	}
	client, err := newR2Client(ctx, r2)
	if err != nil {
		return "", nil, err
	}
	data, err := fetchFromR2(ctx, client, r2.Bucket, opts.R2Key)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(opts.R2Key), data, nil
}

// fetchFromR2 downloads an object, retrying transient failures.
func fetchFromR2(ctx context.Context, client objectGetter, bucket, key string) ([]byte, error) {
	data, err := retry(ctx, 3, func() ([]byte, error) {
		return DownloadFromR2(ctx, client, bucket, key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	return data, nil
}

// scanDocument runs a single scan session over data and renders the report.
func scanDocument(ctx context.Context, w io.Writer, catalog *skills.Catalog, logger *zap.Logger, name string, data []byte, opts scanOptions) error {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = extract.ContentTypeForFile(name)
	}

	session := scan.NewSession(extract.New(logger), catalog, logger)
	session.Upload(name, contentType, data)
	session.SelectRole(opts.Role)
	session.SetCustomSkills(opts.Skills)

	if !session.Ready() {
		return fmt.Errorf("%s is empty: %w", name, scan.ErrNoFileSelected)
	}

	report, err := session.Scan(ctx)
	if err != nil {
		if errors.Is(err, skills.ErrNoSkills) {
			return fmt.Errorf("%w (use --skills or one of --role %q)", err, catalog.Names())
		}
		return err
	}

	return renderReport(w, report, opts.JSON)
}
