package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kungfusheep/serializer/idl"
)

// recordStats is a per-record summary: field count split by kind, useful
// for spotting records whose Integer-mode wire size will dwarf their
// None-mode size (every scalar/sequence/mapping field costs a tag,
// every union field costs a tag plus a variant discriminator).
type recordStats struct {
	name             string
	parents          int
	scalars, seqs    int
	mappings, unions int
}

func collectStats(ns *idl.Namespace, out *[]recordStats) {
	for _, stmt := range ns.Children {
		switch s := stmt.(type) {
		case *idl.Namespace:
			collectStats(s, out)
		case *idl.Record:
			rs := recordStats{name: s.Name, parents: len(s.Parents)}
			for _, m := range s.Members {
				switch m.Modifier {
				case idl.Scalar:
					rs.scalars++
				case idl.Sequence:
					rs.seqs++
				case idl.Mapping:
					rs.mappings++
				case idl.Union:
					rs.unions++
				}
			}
			*out = append(*out, rs)
		}
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats <schema-file>",
	Short: "Print a per-record field-count summary of a schema.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		schema, err := idl.NewParser(src).Parse()
		if err != nil {
			printDiagnostic(err)
			return fmt.Errorf("failed to parse %s", args[0])
		}
		var records []recordStats
		collectStats(schema.Root, &records)
		sort.Slice(records, func(i, j int) bool { return records[i].name < records[j].name })

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RECORD\tPARENTS\tSCALAR\tSEQUENCE\tMAPPING\tUNION")
		for _, rs := range records {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", rs.name, rs.parents, rs.scalars, rs.seqs, rs.mappings, rs.unions)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
