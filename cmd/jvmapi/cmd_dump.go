package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/jvmapi/format"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump [type...]",
		Short: "Dump the API model of types on the classpath",
		Long: `Dump type parameters and significant functions of the named types, or of
every type on the classpath when no names are given.

Examples:
  jvmapi dump -c build/classes java.util.List
  jvmapi dump -f json com.example.Finder
  jvmapi dump -f cbor > api.cbor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := newEncoder(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			p, err := opts.openProvider()
			if err != nil {
				return err
			}
			defer closeProvider(p)

			if len(args) == 0 {
				for typ, err := range p.AllTypes() {
					if err != nil {
						return err
					}
					if err := enc.Encode(typ); err != nil {
						return fmt.Errorf("encode %s: %w", typ.SourceName(), err)
					}
				}
				return nil
			}

			for _, name := range args {
				typ, err := p.Type(name)
				if err != nil {
					return err
				}
				if typ == nil {
					return fmt.Errorf("type not found: %s", name)
				}
				if err := enc.Encode(typ); err != nil {
					return fmt.Errorf("encode %s: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (line, json, cbor)")

	return cmd
}

func newEncoder(name string, w io.Writer) (format.Encoder, error) {
	switch name {
	case "line":
		return format.NewLineEncoder(w), nil
	case "json":
		return format.NewJSONEncoder(w), nil
	case "cbor":
		return format.NewCBOREncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected line, json, or cbor)", name)
}
