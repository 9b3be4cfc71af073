package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/cli"
	"github.com/pkarlsen/switchboard/internal/logging"
	"github.com/pkarlsen/switchboard/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tree as a Mermaid diagram",
	Long:  `Builds the configured tree and outputs a Mermaid flowchart (graph TD) of its menus, extensions and leaves.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		build, _, err := cli.ResolveTree(ctx, cfg, logging.NewNop())
		if err != nil {
			fmt.Printf("Error resolving tree: %v\n", err)
			os.Exit(1)
		}
		root, err := build()
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(root))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
