// Package config loads the optional YAML config file and .env files.
// Environment variables always win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alphabetz/alphabetz/internal/llm"
	"github.com/alphabetz/alphabetz/internal/questiongen"
)

const providerEnv = "ALPHABETZ_LLM_PROVIDER"

// DefaultAddr is the gateway listen address.
const DefaultAddr = ":3000"

// File mirrors config.yaml.
type File struct {
	Provider string    `yaml:"provider"`
	Model    string    `yaml:"model"`
	Gateway  string    `yaml:"gateway"`
	Addr     string    `yaml:"addr"`
	DB       string    `yaml:"db"`
	Practice *Practice `yaml:"practice"`
}

// Practice overrides the practice wizard's initial selection.
type Practice struct {
	TenseCategories []string `yaml:"tense_categories"`
	Forms           []string `yaml:"forms"`
	Voices          []string `yaml:"voices"`
	QuestionTypes   []string `yaml:"question_types"`
	QuestionCount   int      `yaml:"question_count"`
	TimerSecs       int      `yaml:"timer_secs"`
}

// DefaultPath resolves the config file path:
// ALPHABETZ_CONFIG, then $XDG_CONFIG_HOME/alphabetz/config.yaml, then
// ~/.config/alphabetz/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("ALPHABETZ_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "alphabetz", "config.yaml")
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and validates the config file. A missing file yields an empty
// File.
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

func (f File) Validate() error {
	switch f.Provider {
	case "", llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOpenRouter, llm.ProviderMock:
	default:
		return fmt.Errorf("unknown provider %q", f.Provider)
	}
	if f.Practice != nil {
		if err := f.PracticeSettings().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LLMConfig discovers the provider from the environment and applies the
// file's provider and model where the matching variable is unset. The
// bool reports whether the selected provider is usable.
func (f File) LLMConfig() (llm.Config, bool) {
	cfg, ok := llm.DiscoverConfig()
	if f.Provider != "" && os.Getenv(providerEnv) == "" {
		cfg.Provider = f.Provider
		ok = cfg.Validate() == nil
	}
	if f.Model != "" && os.Getenv(modelEnv(cfg.Provider)) == "" {
		setModel(&cfg, f.Model)
	}
	return cfg, ok
}

func modelEnv(provider string) string {
	return "ALPHABETZ_" + strings.ToUpper(provider) + "_MODEL"
}

func setModel(cfg *llm.Config, model string) {
	switch cfg.Provider {
	case llm.ProviderGemini:
		cfg.Gemini.Model = model
	case llm.ProviderOpenAI:
		cfg.OpenAI.Model = model
	case llm.ProviderAnthropic:
		cfg.Anthropic.Model = model
	case llm.ProviderOpenRouter:
		cfg.OpenRouter.Model = model
	}
}

// GatewayURL is ALPHABETZ_GATEWAY or the file's gateway.
func (f File) GatewayURL() string {
	if v := os.Getenv("ALPHABETZ_GATEWAY"); v != "" {
		return v
	}
	return f.Gateway
}

// ListenAddr is ALPHABETZ_ADDR, the file's addr, or DefaultAddr.
func (f File) ListenAddr() string {
	if v := os.Getenv("ALPHABETZ_ADDR"); v != "" {
		return v
	}
	if f.Addr != "" {
		return f.Addr
	}
	return DefaultAddr
}

// PracticeSettings returns questiongen.DefaultSettings with the file's
// non-empty fields applied.
func (f File) PracticeSettings() questiongen.Settings {
	s := questiongen.DefaultSettings()
	p := f.Practice
	if p == nil {
		return s
	}
	if len(p.TenseCategories) > 0 {
		s.TenseCategories = append([]string(nil), p.TenseCategories...)
	}
	if len(p.Forms) > 0 {
		s.Forms = append([]string(nil), p.Forms...)
	}
	if len(p.Voices) > 0 {
		s.Voices = append([]string(nil), p.Voices...)
	}
	if len(p.QuestionTypes) > 0 {
		s.QuestionTypes = append([]string(nil), p.QuestionTypes...)
	}
	if p.QuestionCount > 0 {
		s.QuestionCount = p.QuestionCount
	}
	if p.TimerSecs > 0 {
		s.TimerSecs = p.TimerSecs
	}
	return s
}
