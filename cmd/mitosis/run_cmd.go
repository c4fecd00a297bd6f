package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mitoslab/mitosis/exercise"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "run an exercise described by a TOML file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, warnings, err := exercise.Load(args[0])
		if err != nil {
			return err
		}
		for _, warning := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", warning)
		}
		return runDemo(e)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
