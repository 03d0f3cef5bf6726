package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sqrlid/idcore/block"
	"github.com/sqrlid/idcore/entropy"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import <nickname>",
	Short: "Import a textual S4 (SQRLDATA) identity into the catalog under nickname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return os.ErrInvalid
		}
		text, err := os.ReadFile(importFile)
		if err != nil {
			return err
		}
		storage, err := block.FromTextual(string(text))
		if err != nil {
			return err
		}

		pool, err := entropy.New()
		if err != nil {
			return err
		}
		defer pool.Close()

		var nonce [24]byte
		copy(nonce[:], pool.Bytes(24))

		cat, err := openCatalog()
		if err != nil {
			return err
		}
		if err := cat.Save(args[0], storage.ToBinary(), nonce); err != nil {
			return err
		}
		cmd.Printf("imported identity %q\n", args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to a textual S4 (SQRLDATA) export")
	rootCmd.AddCommand(importCmd)
}
