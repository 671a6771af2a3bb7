package main

import (
	"fmt"
	"os"
	gotemplate "text/template"

	"github.com/spf13/cobra"

	"github.com/kungfusheep/serializer/cursor"
	"github.com/kungfusheep/serializer/text"
)

// decodeAny walks a textual document generically, the way the teacher's
// cmd/glint/template.go turns a document into a map[string]interface{}
// for text/template to range/index over, without requiring the caller to
// know (or have generated code for) the document's schema.
func decodeAny(dec *text.Decoder, in *cursor.Input) (interface{}, error) {
	b, err := peekNonSpace(in)
	if err != nil {
		return nil, err
	}
	switch {
	case b == '{':
		return decodeAnyObject(dec, in)
	case b == '[':
		return decodeAnyArray(dec, in)
	case b == '"':
		return dec.DecodeString()
	case b == 't' || b == 'T' || b == 'f' || b == 'F':
		return dec.DecodeBool()
	default:
		return dec.DecodeFloat64()
	}
}

func peekNonSpace(in *cursor.Input) (byte, error) {
	for {
		if in.AtEnd() {
			return 0, fmt.Errorf("unexpected end of document")
		}
		b, err := in.Peek()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			if err := in.Advance(1); err != nil {
				return 0, err
			}
		default:
			return b, nil
		}
	}
}

func decodeAnyObject(dec *text.Decoder, in *cursor.Input) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	atEnd, err := dec.BeginObject()
	if err != nil {
		return nil, err
	}
	for !atEnd {
		key, err := dec.ObjectKey()
		if err != nil {
			return nil, err
		}
		val, err := decodeAny(dec, in)
		if err != nil {
			return nil, err
		}
		m[key] = val
		atEnd, err = dec.ObjectSep()
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeAnyArray(dec *text.Decoder, in *cursor.Input) ([]interface{}, error) {
	var a []interface{}
	atEnd, err := dec.BeginArray()
	if err != nil {
		return nil, err
	}
	for !atEnd {
		val, err := decodeAny(dec, in)
		if err != nil {
			return nil, err
		}
		a = append(a, val)
		atEnd, err = dec.ArraySep()
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

var templateCmd = &cobra.Command{
	Use:   "template <document-file> <template-file>",
	Short: "Render a text/template against a textual document's decoded data.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docBytes, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		in := cursor.NewInput(docBytes)
		dec := text.NewDecoder(in)
		data, err := decodeAny(dec, in)
		if err != nil {
			printDiagnostic(err)
			return fmt.Errorf("failed to decode %s", args[0])
		}

		tmplBytes, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		tmpl, err := gotemplate.New(args[1]).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("failed to parse template: %v", err)
		}
		return tmpl.Execute(os.Stdout, data)
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
