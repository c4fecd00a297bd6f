package main

import (
	"github.com/spf13/cobra"

	"github.com/mitoslab/mitosis/exercise"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "the first duplicate duplicates again: a three-deep line (A, B, C)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(exercise.BuiltinChain())
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
