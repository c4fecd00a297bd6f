package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mitosis",
	Short: "mitosis -- process duplication classroom demos",
	Long: "Mitosis runs the classic fork() classroom exercises: spawn one or two\n" +
		"duplicates of the current process and print a role marker from each,\n" +
		"then watch the scheduler order the markers differently on every run.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
