package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

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
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(1)
	}

	flags := ff.NewFlagSet("invoice-ocr")
	var (
		port          = flags.IntLong("port", 8000, "HTTP server port")
		dbPath        = flags.StringLong("db", "invoice-ocr.db", "Extraction history database file path")
		storagePath   = flags.StringLong("storage", "./uploads", "Directory for kept uploads")
		keepFiles     = flags.BoolLong("keep-files", "Keep a copy of every processed document")
		engineName    = flags.StringLong("engine", scanning.EngineTesseract, "OCR engine: tesseract, gemini, ollama or azure")
		ocrLang       = flags.StringLong("ocr-lang", "spa", "Tesseract language(s), e.g. spa or spa+eng")
		geminiKey     = flags.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = flags.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = flags.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = flags.StringLong("ollama-model", "llava", "Ollama vision model name")
		azureEndpoint = flags.StringLong("azure-endpoint", "", "Azure Computer Vision endpoint")
		azureKey      = flags.StringLong("azure-key", "", "Azure Computer Vision key")
		allowedExt    = flags.StringLong("allowed-ext", "jpeg,jpg,png", "Comma separated accepted file extensions")
		fetchTimeout  = flags.DurationLong("fetch-timeout", 30*time.Second, "Timeout for downloading images by URL")
		logFile       = flags.StringLong("log-file", "ocr_service.log", "Also append logs to this file (empty to disable)")
		fullText      = flags.BoolLong("log-full-text", "Log the whole OCR text of every extraction")
		authUser      = flags.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = flags.StringLong("auth-pass", "", "Basic auth password (optional)")
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

	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	slog.Info("Initializing OCR engine...", "engine", *engineName)
	engine, err := scanning.New(scanning.Config{
		Engine:        *engineName,
		Language:      *ocrLang,
		GeminiKey:     apiKey,
		GeminiModel:   *geminiModel,
		OllamaURL:     *ollamaURL,
		OllamaModel:   *ollamaModel,
		AzureEndpoint: *azureEndpoint,
		AzureKey:      *azureKey,
	})
	if err != nil {
		slog.Error("Failed to initialize OCR engine", "engine", *engineName, "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	var store receipt.Storage
	if *keepFiles {
		slog.Info("Initializing storage...", "path", *storagePath)
		store, err = receipt.NewLocalStorage(*storagePath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
	}

	service := receipt.NewService(db, engine, store, receipt.Config{
		AllowedExtensions: splitList(*allowedExt),
		KeepFiles:         *keepFiles,
		FullTextAudit:     *fullText,
		FetchTimeout:      *fetchTimeout,
	})

	server := receipt.NewServer(service, receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	})

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

// splitList parses a comma separated flag value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
