package main

import (
	"github.com/spf13/cobra"

	"github.com/mitoslab/mitosis/exercise"
)

var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "one duplication: an original and a duplicate (A, B)",
	// The exercises consume no arguments; extras are ignored.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(exercise.BuiltinSingle())
	},
}

func init() {
	rootCmd.AddCommand(singleCmd)
}
