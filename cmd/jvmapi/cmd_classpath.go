package main

import (
	"fmt"

	"github.com/dhamidi/jvmapi/classpath"
	"github.com/spf13/cobra"
)

func newClasspathCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "Print the classpath entries that will be searched",
		Long: `Print one classpath entry per line, in lookup order. Entries that do not
exist or are not a directory, archive or class file are left out and logged
as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := classpath.Open(opts.entries()...)
			if err != nil {
				return fmt.Errorf("open classpath: %w", err)
			}
			defer repo.Close()

			for _, entry := range repo.Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	return cmd
}
