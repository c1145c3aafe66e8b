package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTypesCmd(opts *globalOptions) *cobra.Command {
	var publicOnly bool

	cmd := &cobra.Command{
		Use:   "types [prefix...]",
		Short: "List the types found on the classpath",
		Long: `List the source names of every type on the classpath, in classpath order.

When prefixes are given only types whose name starts with one of them are
listed.

Examples:
  jvmapi types -c lib/guava.jar com.google.common.collect
  jvmapi types --public`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.openProvider()
			if err != nil {
				return err
			}
			defer closeProvider(p)

			out := cmd.OutOrStdout()
			for typ, err := range p.AllTypes() {
				if err != nil {
					return err
				}
				if !hasAnyPrefix(typ.SourceName(), args) {
					continue
				}
				if publicOnly {
					public, err := typ.IsPublic()
					if err != nil {
						return fmt.Errorf("inspect %s: %w", typ.SourceName(), err)
					}
					if !public {
						continue
					}
				}
				fmt.Fprintln(out, typ.SourceName())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&publicOnly, "public", false, "only list public types")

	return cmd
}

func hasAnyPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
