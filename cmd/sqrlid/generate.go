package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqrlid/idcore/block"
	"github.com/sqrlid/idcore/entropy"
	"github.com/sqrlid/idcore/identity"
)

var generatePassword string

var generateCmd = &cobra.Command{
	Use:   "generate <nickname>",
	Short: "Generate a new identity and store it in the catalog under nickname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nickname := args[0]
		if generatePassword == "" {
			return fmt.Errorf("sqrlid: --password is required")
		}

		opts, err := loadOptions()
		if err != nil {
			return err
		}

		pool, err := entropy.New()
		if err != nil {
			return err
		}
		defer pool.Close()

		u, err := identity.Generate(opts, pool.GetBlocking)
		if err != nil {
			return err
		}
		defer u.Release()

		mkBytes, err := u.Key(identity.SlotMK)
		if err != nil {
			return err
		}
		ilkBytes, err := u.Key(identity.SlotILK)
		if err != nil {
			return err
		}
		var mk, ilk [identity.KeySize]byte
		copy(mk[:], mkBytes)
		copy(ilk[:], ilkBytes)

		params := block.Type1Params{
			NFactor:         9,
			HintLength:      opts.HintLength,
			EnscryptSeconds: opts.EnscryptSeconds,
			TimeoutMinutes:  opts.TimeoutMinutes,
		}
		copy(params.Salt[:], pool.Bytes(16))
		copy(params.IV[:], pool.Bytes(12))
		key, iterations, err := kdfEnScryptMillis([]byte(generatePassword), params.Salt[:], int(opts.EnscryptSeconds)*1000, params.NFactor)
		if err != nil {
			return err
		}
		_ = key
		params.Iterations = uint32(iterations)

		blk, err := block.EncryptType1(mk, ilk, []byte(generatePassword), params)
		if err != nil {
			return err
		}

		storage := block.NewStorage()
		if err := storage.Add(blk); err != nil {
			return err
		}

		var nonce [24]byte
		copy(nonce[:], pool.Bytes(24))

		cat, err := openCatalog()
		if err != nil {
			return err
		}
		if err := cat.Save(nickname, storage.ToBinary(), nonce); err != nil {
			return err
		}

		cmd.Printf("generated identity %q\n", nickname)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatePassword, "password", "", "Password to protect the new identity")
	rootCmd.AddCommand(generateCmd)
}
