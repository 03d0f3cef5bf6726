package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries (by nickname hash; nicknames are not stored in the clear)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		hashes, err := cat.List()
		if err != nil {
			return err
		}
		for _, h := range hashes {
			cmd.Println(hex.EncodeToString(h))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
