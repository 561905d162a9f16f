package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate LLM config
	if c.LLM.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.LLM.BaseURL != "" {
		if _, err := url.Parse(c.LLM.BaseURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "llm.base_url",
				Message: "invalid completion service base URL",
			})
		}
	}

	// Validate TTS config
	if c.TTS.Stability < 0 || c.TTS.Stability > 1 {
		errors = append(errors, ValidationError{
			Field:   "tts.stability",
			Message: "stability must be between 0 and 1",
		})
	}

	if c.TTS.SimilarityBoost < 0 || c.TTS.SimilarityBoost > 1 {
		errors = append(errors, ValidationError{
			Field:   "tts.similarity_boost",
			Message: "similarity_boost must be between 0 and 1",
		})
	}

	// Validate Analyzer config
	if c.Analyzer.MinClauseLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "analyzer.min_clause_length",
			Message: "min_clause_length must be positive",
		})
	}

	if c.Analyzer.KeywordMinClauseLength < c.Analyzer.MinClauseLength {
		errors = append(errors, ValidationError{
			Field:   "analyzer.keyword_min_clause_length",
			Message: "keyword_min_clause_length must not be below min_clause_length",
		})
	}

	if c.Analyzer.MaxConcurrent < 1 {
		errors = append(errors, ValidationError{
			Field:   "analyzer.max_concurrent",
			Message: "max_concurrent must be positive",
		})
	}

	// Validate Server config
	if c.Server.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Message: "listen address is required",
		})
	}

	return errors
}
