package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the phone on this terminal",
	Long:  `Starts the configured phone system with the terminal as keypad and speaker.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		if err := cli.Run(sc, cfg); err != nil {
			fmt.Printf("Error running switchboard: %v\n", err)
			os.Exit(1)
		}
		if sig := sc.Signal(); sig != nil {
			fmt.Printf("\nStopped by signal: %v\n", sig)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
