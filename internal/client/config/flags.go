package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/psychicstar/internal/flagx"
)

var knownFlags = []string{"-s", "-d", "-t", "-g", "-m", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   storage backend (sqlite, postgres, memory, s3, redis)
//	-d string   storage DSN: sqlite file, postgres URL or redis URL
//	-t int      inactivity limit in minutes
//	-g string   reading generator (mock, gemini)
//	-m string   email dispatcher (log, smtp)
//	-l string   log level
//
// os.Args is filtered through flagx.FilterArgs so the -c/-config flag and
// anything unknown are left alone.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	idle := fs.Int("t", int(cfg.IdleTimeout/time.Minute), "inactivity limit (in minutes)")
	fs.StringVar(&cfg.Generator, "g", cfg.Generator, "reading generator")
	fs.StringVar(&cfg.Mailer, "m", cfg.Mailer, "email dispatcher")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.IdleTimeout = time.Duration(*idle) * time.Minute
		}
	})
	return nil
}
