// Package main implements sqrlid, a command-line harness over the
// identity cryptographic core: generate, rekey, export/import, and
// catalog identities backed by a local SQLite store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"

	"github.com/sqrlid/idcore/catalog"
	"github.com/sqrlid/idcore/identity"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	Use:   "sqrlid",
	Short: "Manage SQRL identities: generate, rekey, export, import, list",
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().String("catalog", "", "Path to the identity catalog SQLite file (default: ~/.sqrlid/identities.db)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Uint8("hint-length", 4, "Number of password characters required to re-derive MK from a hint lock")
	rootCmd.PersistentFlags().Uint8("enscrypt-seconds", 5, "EnScrypt time target, in seconds, for the password block")
	rootCmd.PersistentFlags().Uint16("timeout-minutes", 15, "Minutes before a hint-unlocked MK must be re-hinted")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadOptions decodes the bound viper flags into identity.Options via
// mapstructure, rather than hand-assigning each field — giving
// mitchellh/mapstructure direct use instead of only through viper's own
// internal decode calls.
func loadOptions() (identity.Options, error) {
	opts := identity.DefaultOptions()
	raw := map[string]any{
		"hint_length":      viper.GetUint8("hint-length"),
		"enscrypt_seconds": viper.GetUint8("enscrypt-seconds"),
		"timeout_minutes":  viper.GetUint16("timeout-minutes"),
	}
	if err := mapstructure.Decode(raw, &opts); err != nil {
		return opts, fmt.Errorf("sqrlid: decode options: %w", err)
	}
	return opts, nil
}

func catalogPath() string {
	if p := viper.GetString("catalog"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sqrlid-identities.db"
	}
	return home + "/.sqrlid/identities.db"
}

// machineKey derives the secretbox key the catalog seals blobs under.
// A real deployment would source this from OS keychain integration;
// here it is a fixed placeholder so the CLI works standalone.
func machineKey() [32]byte {
	var k [32]byte
	copy(k[:], []byte("sqrlid-local-machine-catalog-key"))
	return k
}

func openCatalog() (*catalog.Catalog, error) {
	return catalog.Open(catalogPath(), machineKey())
}

func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}
