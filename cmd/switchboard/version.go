package main

import (
	"fmt"

	"github.com/spf13/cobra"

	switchboard "github.com/pkarlsen/switchboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of switchboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("switchboard version %s\n", switchboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
