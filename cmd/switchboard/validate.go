package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/cli"
	"github.com/pkarlsen/switchboard/internal/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a tree for addressing consistency",
	Long:  `Builds the configured tree and reports key layout violations: mixed key lengths, terminator collisions, reserved key collisions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Tree is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	build, _, err := cli.ResolveTree(ctx, cfg, logging.NewNop())
	if err != nil {
		return err
	}
	_, err = build()
	return err
}
