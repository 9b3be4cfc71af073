package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/cli"
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List the built-in phone systems",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range cli.DefaultRegistry().List() {
			fmt.Printf("%-16s %s", info.ID, info.Name)
			if info.Version != "" {
				fmt.Printf(" (v%s)", info.Version)
			}
			fmt.Println()
			if info.Description != "" {
				fmt.Printf("%-16s %s\n", "", info.Description)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(systemsCmd)
}
