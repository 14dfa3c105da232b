package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kelseyhightower/envconfig"

	"github.com/insightdelivered/boursorama-importer/internal/accounts"
	"github.com/insightdelivered/boursorama-importer/internal/api"
	"github.com/insightdelivered/boursorama-importer/internal/extractor"
	"github.com/insightdelivered/boursorama-importer/internal/models"
	"github.com/insightdelivered/boursorama-importer/internal/parser"
	"github.com/insightdelivered/boursorama-importer/internal/writer"
)

const version = "1.0.0"

// config holds server-mode settings, overridable via IMPORTER_* env vars.
type config struct {
	Addr         string `envconfig:"ADDR" default:":8080"`
	AccountsFile string `envconfig:"ACCOUNTS_FILE"`
	BodyLimit    int    `envconfig:"BODY_LIMIT" default:"33554432"`
}

func main() {
	accountsFlag := flag.String("accounts", "", "CSV file mapping account identifiers to ledger accounts (key,account)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with .beancount extension)")
	metaFlag := flag.Bool("meta", true, "Render source/document metadata on each entry")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Boursorama Statement Importer

Converts Boursorama PDF statements (checking, card, brokerage trade/fund,
dividend, cash and amortization documents) into Beancount ledger entries.

Usage:
  boursorama-importer --accounts=accounts.csv [flags] <input.pdf|input.txt> [more inputs ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert one statement
  boursorama-importer --accounts=accounts.csv releve.pdf

  # Convert pre-extracted text
  boursorama-importer --accounts=accounts.csv releve.txt

  # Run the upload API
  boursorama-importer --accounts=accounts.csv --serve
`)
	}
	flag.Parse()

	if *versionFlag {
		fmt.Printf("boursorama-importer v%s\n", version)
		os.Exit(0)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg config
	if err := envconfig.Process("importer", &cfg); err != nil {
		log.Error("bad environment", "err", err)
		os.Exit(1)
	}
	accountsPath := cfg.AccountsFile
	if *accountsFlag != "" {
		accountsPath = *accountsFlag
	}
	if accountsPath == "" {
		fmt.Fprintln(os.Stderr, "an accounts file is required (--accounts or IMPORTER_ACCOUNTS_FILE)")
		flag.Usage()
		os.Exit(1)
	}

	dir, err := accounts.LoadFile(accountsPath)
	if err != nil {
		log.Error("loading account directory", "err", err)
		os.Exit(1)
	}
	imp := parser.New(dir)

	if *serveFlag {
		serve(imp, cfg, log)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	failed := false
	for _, inputPath := range flag.Args() {
		if err := processFile(imp, inputPath, *outputFlag, *metaFlag, log); err != nil {
			log.Error("processing failed", "file", inputPath, "err", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func serve(imp *parser.Importer, cfg config, log *slog.Logger) {
	app := fiber.New(fiber.Config{BodyLimit: cfg.BodyLimit})
	api.New(imp, log).Register(app)
	log.Info("listening", "addr", cfg.Addr, "converter", extractor.Available())
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func processFile(imp *parser.Importer, inputPath, outputPath string, includeMeta bool, log *slog.Logger) error {
	var text string
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		converted, err := extractor.Convert(inputPath)
		if err != nil {
			return fmt.Errorf("pdf conversion: %w", err)
		}
		text = converted
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return err
		}
		text = string(data)
	default:
		return fmt.Errorf("expected a .pdf or .txt input, got %q", filepath.Ext(inputPath))
	}

	result, err := imp.Process(filepath.Base(inputPath), text)
	if err != nil {
		return err
	}
	if result.Dialect == models.DialectUnclassified {
		log.Warn("statement not recognized, skipping", "file", inputPath)
		return nil
	}

	for _, d := range result.Diagnostics {
		log.Warn("field not extracted", "file", inputPath, "diagnostic", d.Error())
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".beancount"
	}
	w := &writer.BeancountWriter{IncludeMeta: includeMeta}
	if err := w.WriteToFile(outPath, result.Entries); err != nil {
		return err
	}

	log.Info("converted", "file", inputPath,
		"dialect", result.Dialect, "document", result.Document,
		"entries", len(result.Entries), "output", outPath)
	return nil
}
