package config

import (
	"flag"
	"os"

	"github.com/salespro-app/salespro/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the local database file
//	-d string   remote Postgres DSN (empty disables remote sync)
//	-q int      local storage quota in bytes (0 disables the quota)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-d", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "path to the local database file")
	fs.StringVar(&cfg.RemoteDSN, "d", cfg.RemoteDSN, "remote Postgres DSN")
	fs.Int64Var(&cfg.QuotaBytes, "q", cfg.QuotaBytes, "local storage quota in bytes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
