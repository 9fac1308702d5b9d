/*
Package config manages TOML config for the laddergen engine and tools.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/veldt/laddergen/internal/utils"
	"github.com/veldt/laddergen/pkg/suggest"
)

// Config holds the entire config structure.
type Config struct {
	Dict    DictConfig    `toml:"dict"`
	Suggest SuggestConfig `toml:"suggest"`
	Server  ServerConfig  `toml:"server"`
}

// DictConfig holds word-list options.
type DictConfig struct {
	WordList string `toml:"word_list"`
}

// SuggestConfig exposes the engine tuning. The greedy threshold and the
// first-clears-the-bar pick are authoring policy, so they live here rather
// than as constants.
type SuggestConfig struct {
	ViabilityThreshold float64 `toml:"viability_threshold"`
	LookaheadSample    int     `toml:"lookahead_sample"`
	ProbeLetters       string  `toml:"probe_letters"`
	VowelLow           float64 `toml:"vowel_low"`
	VowelHigh          float64 `toml:"vowel_high"`
	VowelDecay         float64 `toml:"vowel_decay"`
	VowelWeight        float64 `toml:"vowel_weight"`
	LookaheadWeight    float64 `toml:"lookahead_weight"`
	FrequencyWeight    float64 `toml:"frequency_weight"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLetters     int `toml:"max_letters"`
	DefaultLimit   int `toml:"default_limit"`
	MaxSuggestions int `toml:"max_suggestions"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	p := suggest.DefaultPolicy()
	return &Config{
		Dict: DictConfig{
			WordList: "data/words.txt",
		},
		Suggest: SuggestConfig{
			ViabilityThreshold: p.ViabilityThreshold,
			LookaheadSample:    p.LookaheadSample,
			ProbeLetters:       p.ProbeLetters,
			VowelLow:           p.VowelLow,
			VowelHigh:          p.VowelHigh,
			VowelDecay:         p.VowelDecay,
			VowelWeight:        p.VowelWeight,
			LookaheadWeight:    p.LookaheadWeight,
			FrequencyWeight:    p.FrequencyWeight,
		},
		Server: ServerConfig{
			MaxLetters:     8,
			DefaultLimit:   10,
			MaxSuggestions: 26,
		},
	}
}

// Policy converts the suggest section into an engine policy.
func (c *Config) Policy() suggest.Policy {
	s := c.Suggest
	return suggest.Policy{
		ViabilityThreshold: s.ViabilityThreshold,
		LookaheadSample:    s.LookaheadSample,
		ProbeLetters:       s.ProbeLetters,
		VowelLow:           s.VowelLow,
		VowelHigh:          s.VowelHigh,
		VowelDecay:         s.VowelDecay,
		VowelWeight:        s.VowelWeight,
		LookaheadWeight:    s.LookaheadWeight,
		FrequencyWeight:    s.FrequencyWeight,
	}
}

// GetConfigDir returns the config directory with fallback priority:
// ~/.config/laddergen, then the executable dir.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "laddergen")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority: the custom path when
// given, then the default path, then builtin defaults. Config problems
// degrade to defaults with a warning; they never abort startup.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, falling back to section-by-section
// recovery on parse errors.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever sections still parse so a single bad
// key does not discard the whole file.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(dictSection, "word_list"); ok {
			config.Dict.WordList = val
		}
	}
	if suggestSection, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(suggestSection, &config.Suggest)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

func extractSuggestConfig(data map[string]any, s *SuggestConfig) {
	if val, ok := utils.ExtractFloat64(data, "viability_threshold"); ok {
		s.ViabilityThreshold = val
	}
	if val, ok := utils.ExtractInt64(data, "lookahead_sample"); ok {
		s.LookaheadSample = val
	}
	if val, ok := utils.ExtractString(data, "probe_letters"); ok {
		s.ProbeLetters = val
	}
	if val, ok := utils.ExtractFloat64(data, "vowel_low"); ok {
		s.VowelLow = val
	}
	if val, ok := utils.ExtractFloat64(data, "vowel_high"); ok {
		s.VowelHigh = val
	}
	if val, ok := utils.ExtractFloat64(data, "vowel_decay"); ok {
		s.VowelDecay = val
	}
	if val, ok := utils.ExtractFloat64(data, "vowel_weight"); ok {
		s.VowelWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "lookahead_weight"); ok {
		s.LookaheadWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "frequency_weight"); ok {
		s.FrequencyWeight = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_letters"); ok {
		server.MaxLetters = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		server.MaxSuggestions = val
	}
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
