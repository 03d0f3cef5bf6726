package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <nickname>",
	Short: "Record nickname in a \"current\" file beside the catalog (other commands do not read it and still take a nickname)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		if _, err := cat.Load(args[0]); err != nil {
			return err
		}
		statePath := filepath.Join(filepath.Dir(catalogPath()), "current")
		if err := os.WriteFile(statePath, []byte(args[0]), 0o600); err != nil {
			return err
		}
		cmd.Printf("now using %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
