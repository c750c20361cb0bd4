package scanning

import "fmt"

// Engine names accepted by New
const (
	EngineTesseract = "tesseract"
	EngineGemini    = "gemini"
	EngineOllama    = "ollama"
	EngineAzure     = "azure"
)

// Config selects and configures an OCR engine
type Config struct {
	Engine        string
	Language      string // Tesseract languages, e.g. "spa"
	GeminiKey     string
	GeminiModel   string
	OllamaURL     string
	OllamaModel   string
	AzureEndpoint string
	AzureKey      string
}

// New creates the engine named in cfg
func New(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case EngineTesseract, "":
		return NewTesseract(cfg.Language), nil
	case EngineGemini:
		return NewGemini(cfg.GeminiKey, cfg.GeminiModel)
	case EngineOllama:
		return NewOllama(cfg.OllamaURL, cfg.OllamaModel)
	case EngineAzure:
		return NewAzure(cfg.AzureEndpoint, cfg.AzureKey)
	default:
		return nil, fmt.Errorf("unknown engine %q, expected tesseract, gemini, ollama or azure", cfg.Engine)
	}
}
