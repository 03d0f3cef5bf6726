package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqrlid/idcore/block"
	"github.com/sqrlid/idcore/entropy"
	"github.com/sqrlid/idcore/identity"
)

var rekeyPassword string

var rekeyCmd = &cobra.Command{
	Use:   "rekey <nickname>",
	Short: "Rekey a catalog identity, shifting its previous-IUK ring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nickname := args[0]
		if rekeyPassword == "" {
			return fmt.Errorf("sqrlid: --password is required")
		}

		cat, err := openCatalog()
		if err != nil {
			return err
		}
		blob, err := cat.Load(nickname)
		if err != nil {
			return err
		}
		storage, err := block.FromBinary(blob)
		if err != nil {
			return err
		}
		type1, ok := storage.Get(block.Type1)
		if !ok {
			return fmt.Errorf("sqrlid: %q has no password block", nickname)
		}

		mk, ilk, err := block.DecryptType1(type1, []byte(rekeyPassword))
		if err != nil {
			return err
		}

		u := identity.New(identity.DefaultOptions())
		defer u.Release()

		pool, err := entropy.New()
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := u.Rekey(pool.GetBlocking); err != nil {
			return err
		}

		newMKBytes, err := u.Key(identity.SlotMK)
		if err != nil {
			return err
		}
		newILKBytes, err := u.Key(identity.SlotILK)
		if err != nil {
			return err
		}
		_ = mk
		_ = ilk
		var newMK, newILK [identity.KeySize]byte
		copy(newMK[:], newMKBytes)
		copy(newILK[:], newILKBytes)

		params := block.Type1Params{NFactor: 9, HintLength: 4, EnscryptSeconds: 5, TimeoutMinutes: 15}
		copy(params.Salt[:], pool.Bytes(16))
		copy(params.IV[:], pool.Bytes(12))
		_, iterations, err := kdfEnScryptMillis([]byte(rekeyPassword), params.Salt[:], 5000, params.NFactor)
		if err != nil {
			return err
		}
		params.Iterations = uint32(iterations)

		newBlk, err := block.EncryptType1(newMK, newILK, []byte(rekeyPassword), params)
		if err != nil {
			return err
		}
		storage.Replace(newBlk)

		var nonce [24]byte
		copy(nonce[:], pool.Bytes(24))
		if err := cat.Save(nickname, storage.ToBinary(), nonce); err != nil {
			return err
		}

		cmd.Printf("rekeyed identity %q\n", nickname)
		return nil
	},
}

func init() {
	rekeyCmd.Flags().StringVar(&rekeyPassword, "password", "", "Current password for the identity being rekeyed")
	rootCmd.AddCommand(rekeyCmd)
}
