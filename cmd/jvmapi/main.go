package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "jvmapi",
		Short: "Inspect the public API of compiled JVM classes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVarP(&opts.classpath, "classpath", "c", nil, "classpath entries, directories or jars (repeatable, or joined with the path list separator)")
	flags.StringVar(&opts.configFile, "config", "", "path to jvmapi.toml (default: search upwards from the working directory)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTypesCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newClasspathCmd(opts))

	return rootCmd
}
