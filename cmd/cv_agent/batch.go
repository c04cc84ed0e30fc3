package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-automation/internal/pipeline"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Run the pipeline for every CV text file in a directory",
	Long: `Processes independent CVs concurrently, one full pipeline instance per CV.
Each run produces its own slide plan and traceability report; the first failure abandons the remaining CVs.`,
	RunE: runBatchCmd,
}

var batchCVDir string

func init() {
	batchCommand.Flags().StringVar(&batchCVDir, "cv-dir", "", "Directory containing CV .txt files (required)")
	batchCommand.Flags().StringVarP(&runRules, "instructions", "i", "", "Path to instruction table (.xlsx or .csv)")
	batchCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to template descriptor JSON")
	batchCommand.Flags().StringVar(&runJobDesc, "job-description", "", "Optional path to job description text file")
	batchCommand.Flags().StringVar(&runJobDescURL, "job-description-url", "", "Optional URL to fetch the job description from")
	batchCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Output directory for generated files (default: current directory)")
	batchCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	batchCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	batchCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	rootCmd.AddCommand(batchCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if batchCVDir == "" {
		return fmt.Errorf("--cv-dir is required")
	}

	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	cvPaths, err := collectCVPaths(batchCVDir)
	if err != nil {
		return err
	}
	if len(cvPaths) == 0 {
		return fmt.Errorf("no CV .txt files found in %s", batchCVDir)
	}

	logger := newLogger(cfg.Verbose)
	fmt.Printf("Processing %d CVs from %s...\n", len(cvPaths), batchCVDir)

	results, err := pipeline.RunBatch(ctx, cvPaths, pipelineOptions(cfg, logger))
	if err != nil {
		return err
	}

	fmt.Printf("Batch complete: %d slide plans written.\n", len(results))
	return nil
}

// collectCVPaths lists the .txt files of a directory in stable order.
func collectCVPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	return paths, nil
}
