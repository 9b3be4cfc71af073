package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkarlsen/switchboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Switchboard is a phone tree engine for payphone installations",
	Long: `Switchboard runs audio menu trees navigated with a 12-key keypad:
single-digit menus, dial-an-extension directories, and hybrid menus that mix
both. The run command turns your terminal into the payphone.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the switchboard config file")
	rootCmd.PersistentFlags().String("system", "", "Phone system ID (or 'boot' for the boot menu)")
	rootCmd.PersistentFlags().String("tree", "", "YAML tree file, overrides --system")
}

// loadConfig merges the config file with command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if system, _ := cmd.Flags().GetString("system"); system != "" {
		cfg.System = system
	}
	if tree, _ := cmd.Flags().GetString("tree"); tree != "" {
		cfg.TreeFile = tree
	}
	return cfg, nil
}
