package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-automation/internal/config"
	"github.com/jonathan/cv-automation/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full CV automation pipeline end-to-end",
	Long: `Orchestrates the CV automation process: section extraction -> rule application -> slide mapping -> traceability report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runCV          string
	runRules       string
	runTemplate    string
	runJobDesc     string
	runJobDescURL  string
	runOutputDir   string
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runCV, "cv", "", "Path to CV text file")
	runCommand.Flags().StringVarP(&runRules, "instructions", "i", "", "Path to instruction table (.xlsx or .csv)")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to template descriptor JSON")
	runCommand.Flags().StringVar(&runJobDesc, "job-description", "", "Optional path to job description text file (mutually exclusive with --job-description-url)")
	runCommand.Flags().StringVar(&runJobDescURL, "job-description-url", "", "Optional URL to fetch the job description from (mutually exclusive with --job-description)")
	runCommand.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Output directory for generated files (default: current directory)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for run persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.CV == "" {
		return fmt.Errorf("--cv is required (set it via flag or config file)")
	}

	logger := newLogger(cfg.Verbose)
	opts := pipelineOptions(cfg, logger)
	opts.CVPath = cfg.CV

	_, err = pipeline.Run(ctx, opts)
	return err
}

// mergedConfig loads the optional config file and applies explicitly-set CLI
// flags on top of it.
func mergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("cv") {
		cfg.CV = runCV
	}
	if cmd.Flags().Changed("instructions") {
		cfg.Instructions = runRules
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("job-description") {
		cfg.JobDescription = runJobDesc
	}
	if cmd.Flags().Changed("job-description-url") {
		cfg.JobDescriptionURL = runJobDescURL
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Apply defaults for unset values
	cwd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		OutputDir:   cwd,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Instructions == "" {
		return cfg, fmt.Errorf("--instructions is required (set it via flag or config file)")
	}
	if cfg.Template == "" {
		return cfg, fmt.Errorf("--template is required (set it via flag or config file)")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return cfg, fmt.Errorf("failed to create output directory: %w", err)
	}

	return cfg, nil
}

// pipelineOptions maps the merged config onto pipeline run options.
func pipelineOptions(cfg config.Config, logger *log.Logger) pipeline.RunOptions {
	return pipeline.RunOptions{
		InstructionsPath:  cfg.Instructions,
		TemplatePath:      cfg.Template,
		JobDescription:    cfg.JobDescription,
		JobDescriptionURL: cfg.JobDescriptionURL,
		OutputDir:         cfg.OutputDir,
		DatabaseURL:       cfg.DatabaseURL,
		Verbose:           cfg.Verbose,
		Logger:            logger,
	}
}

// newLogger builds the CLI logger; verbose mode lowers the level to debug.
func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
