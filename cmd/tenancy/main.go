package main

import (
	"fmt"
	"os"

	"github.com/beesaferoot/tenancy/internal/commands"
	"github.com/beesaferoot/tenancy/internal/config"
	"github.com/beesaferoot/tenancy/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := commands.NewRootCmd(cfg, logging.New(cfg.Logging))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
