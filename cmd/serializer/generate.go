package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kungfusheep/serializer/codegen"
	"github.com/kungfusheep/serializer/idl"
	"github.com/kungfusheep/serializer/wire"
)

// runGenerate implements the CLI surface of spec.md 6:
//
//	serializer input <schema-file> output <header-file>
//
// "input" and "output" are literal positional markers, not flags, matching
// the schema's own wording; --package and --verbose are the only flags.
func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) != 4 || args[0] != "input" || args[2] != "output" {
		return fmt.Errorf("usage: serializer input <schema-file> output <header-file>")
	}
	schemaPath, outPath := args[1], args[3]

	runID := uuid.New()
	log.WithField("run", runID).Debugf("parsing schema %s", schemaPath)

	src, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	schema, err := idl.NewParser(src).Parse()
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("failed to parse %s", schemaPath)
	}

	switch ext := filepath.Ext(outPath); ext {
	case ".h", ".hpp", ".hxx":
	default:
		fmt.Fprintf(os.Stderr, "warning: output extension %q is not a C-family header\n", ext)
	}

	pkg := GetString(cmd, "package")
	source, err := codegen.Generate(schema, pkg)
	if err != nil {
		printDiagnostic(err)
		return fmt.Errorf("failed to generate from %s", schemaPath)
	}

	if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
		return err
	}
	log.WithField("run", runID).Debugf("wrote %d bytes to %s", len(source), outPath)
	return nil
}

// printDiagnostic renders err to stderr, colorizing the cursor-context
// block when stderr is a terminal. Non-TTY output (pipes, CI logs) is
// left plain so the diagnostic stays grep-friendly.
func printDiagnostic(err error) {
	werr, ok := err.(*wire.Error)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	colorize := term.IsTerminal(int(os.Stderr.Fd()))
	kind := werr.Kind.String()
	if colorize {
		kind = color.New(color.FgRed, color.Bold).Sprint(kind)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", kind, werr.Message)
	if werr.Context == "" {
		return
	}
	if !colorize {
		fmt.Fprintln(os.Stderr, werr.Context)
		return
	}
	for _, line := range strings.Split(werr.Context, "\n") {
		if strings.Contains(line, "^") {
			fmt.Fprintln(os.Stderr, color.New(color.FgYellow).Sprint(line))
		} else {
			fmt.Fprintln(os.Stderr, line)
		}
	}
}
