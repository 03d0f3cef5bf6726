package identity

// Options holds the per-identity tunables carried alongside the key
// slots: flags for site-auth behavior, the hint prefix length used by
// hint-lock, the EnScrypt time target for password-derived keys, and
// the idle timeout before a hint-unlocked MK must be re-hinted.
//
// The `mapstructure` tags let the CLI decode a viper config map
// straight into this struct (see cmd/sqrlid), putting
// github.com/mitchellh/mapstructure to direct use instead of only
// through viper's internals.
type Options struct {
	Flags           uint16 `mapstructure:"flags"`
	HintLength      uint8  `mapstructure:"hint_length"`
	EnscryptSeconds uint8  `mapstructure:"enscrypt_seconds"`
	TimeoutMinutes  uint16 `mapstructure:"timeout_minutes"`
}

// DefaultOptions matches libsqrl's shipped defaults: a 4-character
// hint, 5 seconds of EnScrypt stretching for the password block, and a
// 15-minute hint-unlock timeout.
func DefaultOptions() Options {
	return Options{
		HintLength:      4,
		EnscryptSeconds: 5,
		TimeoutMinutes:  15,
	}
}
