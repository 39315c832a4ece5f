package internal

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"within.website/x/flagenv"
)

// HandleStartup loads a .env file from the working directory if there is
// one, maps PREFIX_* environment variables onto the registered flags and
// parses the command line. Flags must be defined before it is called.
func HandleStartup(prefix string) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("can't load .env", "err", err)
	}

	flagenv.Prefix = prefix
	flagenv.Parse()
	flag.Parse()
}
