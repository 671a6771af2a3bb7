// Package main implements the serializer schema compiler CLI described in
// spec.md 6: a command tree built with cobra, the way the rest of the
// example corpus builds generator/toolbox CLIs (go-corset's pkg/cmd), in
// place of the teacher's own hand-rolled CommandRegistry.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "serializer input <schema-file> output <header-file>",
	Short: "Compile schema files into generated Go serialization code.",
	Long: `serializer reads a schema written in the interface-definition
language of spec.md 4.5 and emits Go source implementing every record and
enum it declares, or inspects the resolved schema tree directly.

Usage mirrors the external surface named in the schema:

  serializer input <schema-file> output <header-file> [--package name]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().String("package", "generated", "Go package name for emitted source")
}

// GetFlag gets an expected bool flag, exiting on a programmer error.
func GetFlag(cmd *cobra.Command, name string) bool {
	r, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

// GetString gets an expected string flag, exiting on a programmer error.
func GetString(cmd *cobra.Command, name string) string {
	r, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return r
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
