package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sqrlid/idcore/block"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <nickname>",
	Short: "Export a catalog identity as textual S4 (SQRLDATA)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		blob, err := cat.Load(args[0])
		if err != nil {
			return err
		}
		storage, err := block.FromBinary(blob)
		if err != nil {
			return err
		}
		text := storage.ToTextual()
		if exportOut == "" {
			cmd.Print(text)
			return nil
		}
		return os.WriteFile(exportOut, []byte(text), 0o600)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "File to write the textual export to (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
