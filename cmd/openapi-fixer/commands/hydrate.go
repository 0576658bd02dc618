package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rafactx/openapi-fixer-v2/hydrator"
	"github.com/rafactx/openapi-fixer-v2/internal/cliutil"
)

// HydrateFlags contains flags for the hydrate command
type HydrateFlags struct {
	Config       string
	Translations string
	Summaries    string
	Output       string
	Verbose      bool
}

// SetupHydrateFlags creates and configures a FlagSet for the hydrate command.
// Returns the FlagSet and a HydrateFlags struct with bound flag variables.
func SetupHydrateFlags() (*flag.FlagSet, *HydrateFlags) {
	fs := flag.NewFlagSet("hydrate", flag.ContinueOnError)
	flags := &HydrateFlags{}

	fs.StringVar(&flags.Config, "config", "", "hydration config file path (required)")
	fs.StringVar(&flags.Translations, "translations", "", "extra dictionary file merged over the config's translations")
	fs.StringVar(&flags.Summaries, "summaries", "", "extra summaries file merged over the config's summaries")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: overwrite the input)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: overwrite the input)")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose progress on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose progress on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: openapi-fixer hydrate [flags] <openapi.{json,yaml}>\n\n")
		cliutil.Writef(fs.Output(), "Enrich a document with metadata, security, common schemas, translations,\n")
		cliutil.Writef(fs.Output(), "summaries, default error responses, global parameters and tag ordering.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer hydrate --config config.yaml openapi.json\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer hydrate --config config.yaml --translations dictionary.json --summaries summaries-pt-br.json openapi.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Every config section is optional; missing sections skip their step\n")
		cliutil.Writef(fs.Output(), "  - Hydration is idempotent: a second run changes nothing\n")
	}

	return fs, flags
}

// HandleHydrate executes the hydrate command
func HandleHydrate(args []string) error {
	fs, flags := SetupHydrateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("hydrate command requires exactly one document path")
	}

	if flags.Config == "" {
		fs.Usage()
		return fmt.Errorf("config file is required (use --config)")
	}

	cfg, err := hydrator.ParseConfigFile(flags.Config)
	if err != nil {
		return err
	}
	if flags.Translations != "" {
		if err := cfg.MergeTranslationsFile(flags.Translations); err != nil {
			return err
		}
	}
	if flags.Summaries != "" {
		if err := cfg.MergeSummariesFile(flags.Summaries); err != nil {
			return err
		}
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	h := hydrator.New(cfg)
	h.Logger = newLogger(flags.Verbose)

	result, err := h.Hydrate(doc)
	if err != nil {
		return fmt.Errorf("hydrating document: %w", err)
	}

	cliutil.Writef(os.Stdout, "Security schemes added: %d\n", result.SchemesAdded)
	cliutil.Writef(os.Stdout, "Common schemas added: %d\n", result.SchemasAdded)
	cliutil.Writef(os.Stdout, "Translations substituted: %d\n", result.Substitutions)
	cliutil.Writef(os.Stdout, "Summaries set: %d\n", result.SummariesSet)
	cliutil.Writef(os.Stdout, "Error responses added: %d\n", result.ResponsesAdded)
	cliutil.Writef(os.Stdout, "Global parameters injected: %d\n", result.ParametersInjected)
	cliutil.Writef(os.Stdout, "Tags ordered: %d\n", result.TagsOrdered)

	return saveDocument(doc, flags.Output)
}
