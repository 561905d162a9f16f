package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type LLMConfig struct {
	APIKey    string  `yaml:"api_key"`
	BaseURL   string  `yaml:"base_url"`
	Model     string  `yaml:"model"`
	RateLimit float64 `yaml:"rate_limit"`
}

type TTSConfig struct {
	APIKey          string  `yaml:"api_key"`
	Voice           string  `yaml:"voice"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
}

type AnalyzerConfig struct {
	MinClauseLength        int `yaml:"min_clause_length"`
	KeywordMinClauseLength int `yaml:"keyword_min_clause_length"`
	MaxConcurrent          int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	TTS      TTSConfig      `yaml:"tts"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Server   ServerConfig   `yaml:"server"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/legalmind/config.yaml"),
			"/etc/legalmind/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.Model == "" {
		config.LLM.Model = "gpt-3.5-turbo"
	}
	if config.LLM.RateLimit == 0 {
		config.LLM.RateLimit = 2.0
	}

	if config.TTS.Voice == "" {
		config.TTS.Voice = "Rachel"
	}
	if config.TTS.Stability == 0 {
		config.TTS.Stability = 0.5
	}
	if config.TTS.SimilarityBoost == 0 {
		config.TTS.SimilarityBoost = 0.75
	}

	if config.Analyzer.MinClauseLength == 0 {
		config.Analyzer.MinClauseLength = 10
	}
	if config.Analyzer.KeywordMinClauseLength == 0 {
		config.Analyzer.KeywordMinClauseLength = 20
	}
	if config.Analyzer.MaxConcurrent == 0 {
		config.Analyzer.MaxConcurrent = 1
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8000"
	}
}

// mergeWithEnv overlays credentials from the environment. Read once at
// load; components never re-read the environment mid-request.
func mergeWithEnv(config *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
		config.TTS.APIKey = key
	}
	if voice := os.Getenv("DEFAULT_TTS_VOICE"); voice != "" {
		config.TTS.Voice = voice
	}
}
