package config

import "time"

// Config holds skanbot configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Recognize RecognizeCfg `mapstructure:"recognize" yaml:"recognize"`
	LangTool  LangToolCfg  `mapstructure:"langtool" yaml:"langtool"`
	Cleanup   CleanupCfg   `mapstructure:"cleanup" yaml:"cleanup"`
	Cache     CacheCfg     `mapstructure:"cache" yaml:"cache"`
	Progress  ProgressCfg  `mapstructure:"progress" yaml:"progress"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
}

// RecognizeCfg configures the recognition engine and template batch.
type RecognizeCfg struct {
	Engine    string        `mapstructure:"engine" yaml:"engine"`       // "tesseract"
	Languages []string      `mapstructure:"languages" yaml:"languages"` // tesseract language codes
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`     // per-template ceiling
	PDFDPI    int           `mapstructure:"pdf_dpi" yaml:"pdf_dpi"`     // render resolution for PDF pages
}

// LangToolCfg configures the LanguageTool grammar service and its container.
type LangToolCfg struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Language string `mapstructure:"language" yaml:"language"`
	// ContainerName is the Docker container name (default: skanbot-langtool)
	ContainerName string `mapstructure:"container_name" yaml:"container_name"`
	// Image is the Docker image to use (default: erikvl87/languagetool:latest)
	Image string `mapstructure:"image" yaml:"image"`
	// Port is the host port to bind (default: 8081)
	Port string `mapstructure:"port" yaml:"port"`
}

// CleanupCfg configures the best-effort language-model cleanup stage.
type CleanupCfg struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"` // OpenAI-compatible endpoint
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	TopK        int     `mapstructure:"top_k" yaml:"top_k"`
	TopP        float64 `mapstructure:"top_p" yaml:"top_p"`
}

// CacheCfg configures the recognized-answer cache and its export upload.
type CacheCfg struct {
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	UploadToken    string  `mapstructure:"upload_token" yaml:"upload_token"` // supports ${ENV_VAR} syntax
	UploadDir      string  `mapstructure:"upload_dir" yaml:"upload_dir"`
}

// ProgressCfg configures the cleanup progress indicator.
type ProgressCfg struct {
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	Step     time.Duration `mapstructure:"step" yaml:"step"`
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Recognize: RecognizeCfg{
			Engine:    "tesseract",
			Languages: []string{"rus", "eng"},
			Timeout:   60 * time.Second,
			PDFDPI:    300,
		},
		LangTool: LangToolCfg{
			URL:           "http://localhost:8081",
			Language:      "ru-RU",
			ContainerName: "skanbot-langtool",
			Image:         "erikvl87/languagetool:latest",
			Port:          "8081",
		},
		Cleanup: CleanupCfg{
			Enabled:     true,
			BaseURL:     "http://localhost:4891/v1",
			Model:       "gpt4all-falcon-q4_0",
			APIKey:      "${SKANBOT_CLEANUP_API_KEY}",
			MaxTokens:   512,
			Temperature: 0.2,
			TopK:        40,
			TopP:        0.9,
		},
		Cache: CacheCfg{
			Enabled:        true,
			FuzzyThreshold: 0.85,
			UploadToken:    "${YADISK_TOKEN}",
			UploadDir:      "skanbot",
		},
		Progress: ProgressCfg{
			Duration: 30 * time.Second,
			Step:     5 * time.Second,
		},
		Server: ServerCfg{
			Port: "8080",
		},
	}
}
