package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Prompts holds the fmt.Sprintf templates for every oracle task. Keeping them
// in the TOML config lets deployments tune extraction behavior without a
// rebuild; Default() carries compiled-in fallbacks.
type Prompts struct {
	Segmentation string `toml:"segmentation"`
	Characters   string `toml:"characters"`
	Composition  string `toml:"composition"`
	Background   string `toml:"background"`
	Dialogues    string `toml:"dialogues"`
	Bubbles      string `toml:"bubbles"`
	Enhance      string `toml:"enhance"`
}

type LLMConfig struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// StabilityConfig configures the Stability AI text-to-image client. Width and
// Height of 0 mean "use the engine's native default".
type StabilityConfig struct {
	APIKey         string  `toml:"api_key"`
	EngineID       string  `toml:"engine_id"`
	Samples        int     `toml:"samples"`
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	Steps          int     `toml:"steps"`
	CFGScale       float64 `toml:"cfg_scale"`
	Seed           int     `toml:"seed"` // 0 = random
	StylePreset    string  `toml:"style_preset"`
	NegativePrompt string  `toml:"negative_prompt"`
	Sampler        string  `toml:"sampler"`
	RateLimit      float64 `toml:"rate_limit"` // requests per second, 0 = unlimited
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// StyleConfig is the global webtoon art direction injected into every image
// prompt.
type StyleConfig struct {
	ArtStyle     string `toml:"art_style"`
	ColorPalette string `toml:"color_palette"`
}

type PipelineConfig struct {
	// ContextExcerptRunes is the size of the leading excerpt of the whole
	// novel carried into every cut's scene context.
	ContextExcerptRunes int `toml:"context_excerpt_runes"`
}

type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	Stability StabilityConfig `toml:"stability"`
	Style     StyleConfig     `toml:"style"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Prompts   Prompts         `toml:"prompts"`
}

// Default returns a Config usable without any config file at all.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-1.5-flash-latest",
			TimeoutSeconds: 120,
		},
		Stability: StabilityConfig{
			EngineID:       "stable-diffusion-xl-1024-v1-0",
			Samples:        1,
			Steps:          30,
			CFGScale:       7.0,
			StylePreset:    "comic-book",
			TimeoutSeconds: 180,
		},
		Style: StyleConfig{
			ArtStyle:     "modern, clean webtoon style",
			ColorPalette: "bright and vivid colors",
		},
		Pipeline: PipelineConfig{
			ContextExcerptRunes: 500,
		},
		Prompts: DefaultPrompts(),
	}
}

// Load reads a TOML config file and fills empty fields from Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	cfg.fillPromptDefaults()

	return cfg, nil
}

func (c *Config) fillPromptDefaults() {
	def := DefaultPrompts()
	if c.Prompts.Segmentation == "" {
		c.Prompts.Segmentation = def.Segmentation
	}
	if c.Prompts.Characters == "" {
		c.Prompts.Characters = def.Characters
	}
	if c.Prompts.Composition == "" {
		c.Prompts.Composition = def.Composition
	}
	if c.Prompts.Background == "" {
		c.Prompts.Background = def.Background
	}
	if c.Prompts.Dialogues == "" {
		c.Prompts.Dialogues = def.Dialogues
	}
	if c.Prompts.Bubbles == "" {
		c.Prompts.Bubbles = def.Bubbles
	}
	if c.Prompts.Enhance == "" {
		c.Prompts.Enhance = def.Enhance
	}
}

// ApplyEnv overrides config values from environment variables where set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("STABILITY_API_KEY"); v != "" {
		c.Stability.APIKey = v
	}
	if v := os.Getenv("STABILITY_ENGINE_ID"); v != "" {
		c.Stability.EngineID = v
	}
	if v := os.Getenv("STABILITY_SEED"); v != "" {
		if seed, err := strconv.Atoi(v); err == nil {
			c.Stability.Seed = seed
		}
	}
}
