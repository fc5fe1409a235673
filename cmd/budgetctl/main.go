// Command budgetctl runs the budget calculator from the terminal.
package main

import (
	"os"

	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
)

func main() {
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", "warn")
	}
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
