package main

import (
	"github.com/dkasyanov/shoebox/internal/config"
	"github.com/dkasyanov/shoebox/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
