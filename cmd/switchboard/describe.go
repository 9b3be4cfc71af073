package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/cli"
	"github.com/pkarlsen/switchboard/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe [system]",
	Short: "Show a phone system's dialing card",
	Long:  `Renders a system's metadata and menu layout as a dialing card, the thing you'd print and tape next to the phone.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg := cli.DefaultRegistry()

		info, err := reg.Lookup(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		build, err := reg.Resolve(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		root, err := build()
		if err != nil {
			fmt.Printf("Error building tree: %v\n", err)
			os.Exit(1)
		}

		markdown := cli.DescribeMarkdown(info, root)
		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			// Fall back to raw markdown on rendering trouble.
			fmt.Print(markdown)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
