// Package pipeline provides the high-level orchestration for the CV
// automation process: extraction, rule application, slide mapping, and
// traceability reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jonathan/cv-automation/internal/db"
	"github.com/jonathan/cv-automation/internal/extraction"
	"github.com/jonathan/cv-automation/internal/ingestion"
	"github.com/jonathan/cv-automation/internal/matching"
	"github.com/jonathan/cv-automation/internal/observability"
	"github.com/jonathan/cv-automation/internal/report"
	"github.com/jonathan/cv-automation/internal/rules"
	"github.com/jonathan/cv-automation/internal/slides"
	"github.com/jonathan/cv-automation/internal/trace"
	"github.com/jonathan/cv-automation/internal/types"
)

// RunOptions holds configuration for running the pipeline.
type RunOptions struct {
	CVPath            string
	InstructionsPath  string
	TemplatePath      string
	JobDescription    string // optional path to a job description text file
	JobDescriptionURL string // optional URL, mutually exclusive with JobDescription
	OutputDir         string
	DatabaseURL       string
	Verbose           bool
	Logger            *log.Logger
}

// Result holds the outputs of a completed pipeline run.
type Result struct {
	Model         *types.ContentModel
	Assignment    *types.SlideAssignment
	Export        trace.Export
	SlidePlanPath string
	ReportPath    string
}

// Run executes the full single-CV pipeline. Every component reports its
// decisions to a recorder owned by this run; only fatal input conditions
// surface as errors.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	printer := observability.NewPrinter(os.Stdout)
	rec := trace.NewRecorder()

	// Connect the optional artifact store. Failure degrades to file-only
	// output, matching the rest of the never-abort-on-recoverable policy.
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, continuing without persistence", "err", err)
			database = nil
		} else {
			defer database.Close()
			if err := database.CreateRun(ctx, rec.RunID(), opts.CVPath, opts.InstructionsPath, opts.TemplatePath); err != nil {
				logger.Warn("failed to create database run", "err", err)
				database = nil
			}
		}
	}

	fmt.Printf("Step 1/6: Extracting CV sections from %s...\n", opts.CVPath)
	lines, err := ingestion.ReadCVLines(opts.CVPath)
	if err != nil {
		return nil, err
	}
	cv := extraction.New(rec).Extract(lines)
	if len(cv.Sections) == 0 {
		return nil, &extraction.NoSectionsError{Source: opts.CVPath}
	}
	if opts.Verbose {
		printer.PrintSections(cv)
	}
	saveArtifact(ctx, logger, database, rec, trace.StepExtraction, db.CategoryExtraction, cv)

	fmt.Printf("Step 2/6: Loading customization rules from %s...\n", opts.InstructionsPath)
	rows, err := ingestion.ReadRuleRows(opts.InstructionsPath)
	if err != nil {
		return nil, err
	}
	ruleSet, err := rules.Load(rows, rec)
	if err != nil {
		return nil, err
	}
	saveArtifact(ctx, logger, database, rec, trace.StepRuleLoad, db.CategoryRules, ruleSet)

	fmt.Printf("Step 3/6: Deriving job signal...\n")
	signal, err := loadJobSignal(ctx, opts, rec)
	if err != nil {
		// The job description is an optional input; an unreadable one is a
		// recoverable condition, not a fatal error.
		logger.Warn("job description unavailable, continuing without signal", "err", err)
		rec.Warning(trace.StepJobSignal, jobDescriptionRef(opts), "job description unavailable")
		signal = nil
	}
	if signal == nil {
		fmt.Printf("No job description provided\n")
	} else {
		saveArtifact(ctx, logger, database, rec, trace.StepJobSignal, db.CategoryMatching, signal)
	}

	fmt.Printf("Step 4/6: Applying %d rules...\n", len(ruleSet.Rules))
	model := rules.NewEngine(rec, signal).Apply(cv, ruleSet)
	if opts.Verbose {
		printer.PrintContentModel(model)
	}
	saveArtifact(ctx, logger, database, rec, trace.StepRuleApply, db.CategoryRules, model)

	fmt.Printf("Step 5/6: Mapping content to template %s...\n", opts.TemplatePath)
	tmpl, err := ingestion.ReadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	assignment, err := slides.NewMapper(rec).Map(model, tmpl)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintAssignment(assignment)
	}
	saveArtifact(ctx, logger, database, rec, trace.StepSlideMapping, db.CategoryMapping, assignment)

	fmt.Printf("Step 6/6: Writing outputs to %s...\n", opts.OutputDir)
	export := rec.Export(trace.Inputs{
		CV:             opts.CVPath,
		Instructions:   opts.InstructionsPath,
		Template:       opts.TemplatePath,
		JobDescription: jobDescriptionRef(opts),
	})

	now := time.Now()
	planPath, err := report.WriteSlidePlan(opts.OutputDir, assignment, now)
	if err != nil {
		return nil, err
	}
	reportPath, err := report.WriteTraceReport(opts.OutputDir, export, now)
	if err != nil {
		return nil, err
	}

	if database != nil {
		if err := database.SaveTraceRecords(ctx, rec.RunID(), export.Records); err != nil {
			logger.Warn("failed to persist trace records", "err", err)
		}
		if err := database.CompleteRun(ctx, rec.RunID(), "completed"); err != nil {
			logger.Warn("failed to complete database run", "err", err)
		}
	}

	if opts.Verbose {
		printer.PrintTraceSummary(export)
	}
	fmt.Printf("Done! Slide plan: %s\n", planPath)
	fmt.Printf("Traceability report: %s\n", reportPath)

	return &Result{
		Model:         model,
		Assignment:    assignment,
		Export:        export,
		SlidePlanPath: planPath,
		ReportPath:    reportPath,
	}, nil
}

// loadJobSignal reads the optional job description from a file or URL and
// derives the keyword signal. Returns nil when no job description was
// supplied.
func loadJobSignal(ctx context.Context, opts RunOptions, rec *trace.Recorder) (*types.JobSignal, error) {
	var text string
	var err error

	switch {
	case opts.JobDescriptionURL != "":
		text, err = ingestion.IngestJobDescriptionURL(ctx, opts.JobDescriptionURL)
	case opts.JobDescription != "":
		text, err = ingestion.ReadJobDescription(opts.JobDescription)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return matching.Match(text, rec), nil
}

// jobDescriptionRef identifies the optional job description input by path or
// URL for the trace export.
func jobDescriptionRef(opts RunOptions) string {
	if opts.JobDescriptionURL != "" {
		return opts.JobDescriptionURL
	}
	return opts.JobDescription
}

// saveArtifact persists one intermediate artifact when a database is
// connected. Persistence failures are logged, never fatal.
func saveArtifact(ctx context.Context, logger *log.Logger, database *db.DB, rec *trace.Recorder, step, category string, content any) {
	if database == nil {
		return
	}
	if err := database.SaveArtifact(ctx, rec.RunID(), step, category, content); err != nil {
		logger.Warn("failed to save artifact", "step", step, "err", err)
	}
}
