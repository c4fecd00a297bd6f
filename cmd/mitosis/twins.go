package main

import (
	"github.com/spf13/cobra"

	"github.com/mitoslab/mitosis/exercise"
)

var twinsCmd = &cobra.Command{
	Use:   "twins",
	Short: "the original duplicates twice: two sibling duplicates (A, B, C)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(exercise.BuiltinFanout())
	},
}

func init() {
	rootCmd.AddCommand(twinsCmd)
}
