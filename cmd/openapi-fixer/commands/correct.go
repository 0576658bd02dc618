package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rafactx/openapi-fixer-v2/correction"
	"github.com/rafactx/openapi-fixer-v2/internal/cliutil"
)

// CorrectFlags contains flags for the correct command
type CorrectFlags struct {
	Config       string
	ExportConfig string
	Output       string
	Verbose      bool
}

// SetupCorrectFlags creates and configures a FlagSet for the correct command.
// Returns the FlagSet and a CorrectFlags struct with bound flag variables.
func SetupCorrectFlags() (*flag.FlagSet, *CorrectFlags) {
	fs := flag.NewFlagSet("correct", flag.ContinueOnError)
	flags := &CorrectFlags{}

	fs.StringVar(&flags.Config, "config", "", "rule file path (default: built-in rule list)")
	fs.StringVar(&flags.ExportConfig, "export-config", "", "write the annotated default rule file to this path and exit")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: overwrite the input)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: overwrite the input)")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose progress on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose progress on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: openapi-fixer correct [flags] <openapi.{json,yaml}>\n\n")
		cliutil.Writef(fs.Output(), "Apply an ordered list of declarative correction rules, then run\n")
		cliutil.Writef(fs.Output(), "semantic checks (DELETE request bodies, path parameter consistency).\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer correct openapi.json\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer correct --config rules.yaml openapi.json\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer correct --export-config rules.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Every rule applied or was satisfied, no findings\n")
		cliutil.Writef(fs.Output(), "  1    Input errors, failed rules, or semantic findings\n")
		cliutil.Writef(fs.Output(), "       (the corrected document is still saved first)\n")
	}

	return fs, flags
}

// HandleCorrect executes the correct command
func HandleCorrect(args []string) error {
	fs, flags := SetupCorrectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.ExportConfig != "" {
		if err := correction.ExportConfig(flags.ExportConfig); err != nil {
			return err
		}
		cliutil.Writef(os.Stdout, "Rule template written to: %s\n", flags.ExportConfig)
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("correct command requires exactly one document path")
	}

	rules := correction.DefaultRules()
	if flags.Config != "" {
		var err error
		rules, err = correction.ParseRulesFile(flags.Config)
		if err != nil {
			return err
		}
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	engine := correction.New()
	engine.Logger = newLogger(flags.Verbose)

	report := engine.Apply(doc, rules)

	cliutil.Writef(os.Stdout, "Rules applied: %d\n", report.AppliedCount)
	cliutil.Writef(os.Stdout, "Rules satisfied: %d\n", report.SatisfiedCount)
	cliutil.Writef(os.Stdout, "Rules failed: %d\n", report.FailedCount)

	for _, outcome := range report.Outcomes {
		if outcome.Status == correction.StatusFailed {
			cliutil.Writef(os.Stdout, "  ✗ %s: %s\n", outcome.RuleID, outcome.Reason)
		}
	}

	if len(report.Findings) > 0 {
		cliutil.Writef(os.Stdout, "Findings (%d):\n", len(report.Findings))
		for _, finding := range report.Findings {
			cliutil.Writef(os.Stdout, "  - [%s] %s: %s\n", finding.Check, finding.Location, finding.Detail)
		}
	}

	// Corrections already made are kept even when the run is not clean.
	if err := saveDocument(doc, flags.Output); err != nil {
		return err
	}

	if !report.Success() {
		return fmt.Errorf("%d failed rule(s), %d finding(s)", report.FailedCount, len(report.Findings))
	}

	cliutil.Writef(os.Stdout, "✓ Document is clean\n")
	return nil
}
