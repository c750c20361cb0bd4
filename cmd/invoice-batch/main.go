package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/invoice-ocr/internal/logging"
	"github.com/zombor/invoice-ocr/internal/receipt"
	"github.com/zombor/invoice-ocr/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(1)
	}

	flags := ff.NewFlagSet("invoice-batch")
	var (
		dataDir       = flags.StringLong("data-dir", "data", "Directory with the images to process")
		outPath       = flags.StringLong("out", "results_batch.txt", "Report file")
		xlsxPath      = flags.StringLong("xlsx", "", "Also write a workbook to this path (optional)")
		engineName    = flags.StringLong("engine", scanning.EngineTesseract, "OCR engine: tesseract, gemini, ollama or azure")
		ocrLang       = flags.StringLong("ocr-lang", "spa", "Tesseract language(s)")
		geminiKey     = flags.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = flags.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = flags.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = flags.StringLong("ollama-model", "llava", "Ollama vision model name")
		azureEndpoint = flags.StringLong("azure-endpoint", "", "Azure Computer Vision endpoint")
		azureKey      = flags.StringLong("azure-key", "", "Azure Computer Vision key")
		logFile       = flags.StringLong("log-file", "ocr_service.log", "Also append logs to this file (empty to disable)")
		showVersion   = flags.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(flags, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_OCR"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(flags))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logCloser, err := logging.Setup(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if err := run(*dataDir, *outPath, *xlsxPath, scanning.Config{
		Engine:        *engineName,
		Language:      *ocrLang,
		GeminiKey:     firstNonEmpty(*geminiKey, os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   *geminiModel,
		OllamaURL:     *ollamaURL,
		OllamaModel:   *ollamaModel,
		AzureEndpoint: *azureEndpoint,
		AzureKey:      *azureKey,
	}); err != nil {
		slog.Error("Batch failed", "error", err)
		os.Exit(1)
	}
}

func run(dataDir, outPath, xlsxPath string, cfg scanning.Config) error {
	engine, err := scanning.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing OCR engine: %w", err)
	}
	defer engine.Close()

	// Batch runs keep no history
	service := receipt.NewService(nil, engine, nil, receipt.Config{})

	results, err := service.ProcessDirectory(dataDir)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer out.Close()
	if err := receipt.WriteReport(out, results); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if xlsxPath != "" {
		wb, err := os.Create(xlsxPath)
		if err != nil {
			return fmt.Errorf("creating workbook: %w", err)
		}
		defer wb.Close()
		if err := receipt.WriteWorkbook(wb, results); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		slog.Info("Workbook written", "path", xlsxPath)
	}

	receipt.WriteSummary(os.Stdout, receipt.Summarize(results))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
