package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/smoke"
)

func main() {
	baseURL := flag.StringP("base-url", "u", envOr("API_BASE_URL", "http://localhost:8001"), "deployment base URL (without /api)")
	timeout := flag.DurationP("timeout", "t", 10*time.Second, "per-request timeout")
	format := flag.String("log-format", logger.FormatConsole, "console or json")
	flag.Parse()

	log := logger.Get(logger.InfoLevel, *format)
	defer func() { _ = log.Sync() }()

	log.Infow("smoke_test_start", "base_url", *baseURL)

	runner := smoke.NewRunner(*baseURL, nil, log)
	ctx, cancel := context.WithTimeout(context.Background(), 6*(*timeout))
	defer cancel()

	rep := runner.Run(ctx)
	fmt.Printf("Tests passed: %d/%d\n", rep.Passed, rep.Run)
	if !rep.OK() {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
