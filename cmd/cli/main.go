package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"portfolio-snapshots/internal/config"
	"portfolio-snapshots/internal/data"
	"portfolio-snapshots/internal/model"
	"portfolio-snapshots/internal/replay"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli generate --config config.yaml --portfolio <id> [--through YYYY-MM-DD] [--out results/snapshots.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - generate replays the portfolio's ledger from the last stored snapshot and prints one snapshot per trading day")
	fmt.Println("  - --through defaults to today")
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "Path to YAML config")
	portfolioID := fs.String("portfolio", "", "Portfolio identifier")
	through := fs.String("through", "", "Replay through this date instead of today (YYYY-MM-DD)")
	outPath := fs.String("out", "", "Optional path to write snapshots CSV")
	_ = fs.Parse(args)

	if *portfolioID == "" {
		fmt.Println("--portfolio is required")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	end := model.Today()
	if *through != "" {
		end, err = model.ParseDate(*through)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --through: %v\n", err)
			os.Exit(2)
		}
	}

	client := data.NewClient(cfg.DataService.BaseURL, cfg.Timeout())
	gen := replay.NewGenerator(client)

	snapshots, err := gen.GenerateThrough(*portfolioID, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode snapshots: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *outPath != "" {
		if err := replay.WriteSnapshotsCSV(*outPath, snapshots); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %d snapshot(s) to %s\n", len(snapshots), *outPath)
	}
}
