package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rafactx/openapi-fixer-v2/internal/cliutil"
	"github.com/rafactx/openapi-fixer-v2/renamer"
)

// RenameFlags contains flags for the rename command
type RenameFlags struct {
	Output     string
	PascalCase bool
	Verbose    bool
}

// SetupRenameFlags creates and configures a FlagSet for the rename command.
// Returns the FlagSet and a RenameFlags struct with bound flag variables.
func SetupRenameFlags() (*flag.FlagSet, *RenameFlags) {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	flags := &RenameFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: overwrite the input)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: overwrite the input)")
	fs.BoolVar(&flags.PascalCase, "pascal-case", false, "PascalCase each word instead of stripping whitespace")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose progress on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose progress on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: openapi-fixer rename [flags] <openapi.{json,yaml}>\n\n")
		cliutil.Writef(fs.Output(), "Rename component schemas whose names contain whitespace and rewrite\n")
		cliutil.Writef(fs.Output(), "every $ref pointing at them.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer rename openapi.json\n")
		cliutil.Writef(fs.Output(), "  openapi-fixer rename --pascal-case -o renamed.json openapi.json\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All references resolve after renaming\n")
		cliutil.Writef(fs.Output(), "  1    Input unreadable, or dangling references remain\n")
	}

	return fs, flags
}

// HandleRename executes the rename command
func HandleRename(args []string) error {
	fs, flags := SetupRenameFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("rename command requires exactly one document path")
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	r := renamer.New()
	r.Logger = newLogger(flags.Verbose)
	if flags.PascalCase {
		r.Normalizer = renamer.PascalCase
	}

	result := r.Rename(doc)

	cliutil.Writef(os.Stdout, "Schemas renamed: %d\n", result.RenamedCount)
	cliutil.Writef(os.Stdout, "References updated: %d\n", result.RefsUpdated)

	if len(result.Collisions) > 0 {
		cliutil.Writef(os.Stdout, "Collisions (%d):\n", len(result.Collisions))
		for i := range result.Collisions {
			cliutil.Writef(os.Stdout, "  - %s\n", result.Collisions[i].Error())
		}
	}

	if err := saveDocument(doc, flags.Output); err != nil {
		return err
	}

	if !result.Success {
		cliutil.Writef(os.Stdout, "Dangling references (%d):\n", len(result.DanglingRefs))
		for _, ref := range result.DanglingRefs {
			cliutil.Writef(os.Stdout, "  - %s\n", ref)
		}
		return fmt.Errorf("%d dangling reference(s) remain", len(result.DanglingRefs))
	}

	cliutil.Writef(os.Stdout, "✓ All schema references resolve\n")
	return nil
}
