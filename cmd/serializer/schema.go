package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kungfusheep/serializer/idl"
)

// schemaDump is the YAML-serializable projection of a resolved idl.Schema.
// idl.Namespace/Record/Enum carry back-pointers (NS, DeclaredNS, Parent)
// that would recurse forever under yaml.v3's default struct walk, so this
// mirrors only the tree shape a developer wants to inspect.
type schemaDump struct {
	Namespace string       `yaml:"namespace,omitempty"`
	Enums     []enumDump   `yaml:"enums,omitempty"`
	Records   []recordDump `yaml:"records,omitempty"`
	Children  []schemaDump `yaml:"namespaces,omitempty"`
}

type enumDump struct {
	Name    string   `yaml:"name"`
	Symbols []string `yaml:"symbols"`
}

type recordDump struct {
	Name    string       `yaml:"name"`
	Packed  bool         `yaml:"packed,omitempty"`
	Parents []parentDump `yaml:"parents,omitempty"`
	Members []memberDump `yaml:"members"`
}

type parentDump struct {
	Name string `yaml:"name"`
	ID   uint32 `yaml:"id"`
}

type memberDump struct {
	Name     string `yaml:"name"`
	ID       uint32 `yaml:"id"`
	Modifier string `yaml:"modifier"`
	Type     string `yaml:"type"`
}

func dumpNamespace(ns *idl.Namespace) schemaDump {
	d := schemaDump{Namespace: ns.QualifiedName()}
	for _, stmt := range ns.Children {
		switch s := stmt.(type) {
		case *idl.Namespace:
			d.Children = append(d.Children, dumpNamespace(s))
		case *idl.Enum:
			d.Enums = append(d.Enums, enumDump{Name: s.Name, Symbols: s.Symbols})
		case *idl.Record:
			d.Records = append(d.Records, dumpRecord(s))
		}
	}
	return d
}

func dumpRecord(r *idl.Record) recordDump {
	rd := recordDump{Name: r.Name, Packed: r.Packed}
	for _, p := range r.Parents {
		rd.Parents = append(rd.Parents, parentDump{Name: p.RefName, ID: p.ID})
	}
	for _, m := range r.Members {
		rd.Members = append(rd.Members, memberDump{
			Name:     m.Name,
			ID:       m.ID,
			Modifier: modifierName(m.Modifier),
			Type:     typeName(m),
		})
	}
	return rd
}

func modifierName(m idl.Modifier) string {
	switch m {
	case idl.Scalar:
		return "scalar"
	case idl.Sequence:
		return "sequence"
	case idl.Mapping:
		return "mapping"
	case idl.Union:
		return "union"
	default:
		return "unknown"
	}
}

func typeName(m *idl.Member) string {
	if len(m.Types) == 0 {
		return ""
	}
	if m.Modifier == idl.Union {
		names := make([]string, len(m.Types))
		for i, t := range m.Types {
			names[i] = t.Name + ":" + t.Tag
		}
		return fmt.Sprintf("%v", names)
	}
	return m.Types[0].Name
}

var schemaCmd = &cobra.Command{
	Use:   "schema <schema-file>",
	Short: "Dump the resolved schema tree as YAML.",
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
		out, err := yaml.Marshal(dumpNamespace(schema.Root))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
