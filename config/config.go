package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const DefaultDirectorySourceURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

type Config struct {
	App       AppConfig
	Log       LogConfig
	Directory DirectoryConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

// DirectoryConfig controls where the doctor list comes from and which
// matching policies the filter engine runs with.
type DirectoryConfig struct {
	SourceURL       string
	SearchMatch     string // substring | prefix
	SpecialtyMatch  string // any | all
	SuggestionLimit int
}

func LoadConfig() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, file string) (*Config, error) {
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DIRECTORY_SOURCE_URL", DefaultDirectorySourceURL)
	v.SetDefault("DIRECTORY_SEARCH_MATCH", "substring")
	v.SetDefault("DIRECTORY_SPECIALTY_MATCH", "any")
	v.SetDefault("DIRECTORY_SUGGESTION_LIMIT", 3)

	// A missing .env is fine, everything can come from the environment.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	suggestionLimit := v.GetInt("DIRECTORY_SUGGESTION_LIMIT")
	if suggestionLimit <= 0 {
		suggestionLimit = 3
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Directory: DirectoryConfig{
			SourceURL:       strings.TrimSpace(v.GetString("DIRECTORY_SOURCE_URL")),
			SearchMatch:     strings.ToLower(strings.TrimSpace(v.GetString("DIRECTORY_SEARCH_MATCH"))),
			SpecialtyMatch:  strings.ToLower(strings.TrimSpace(v.GetString("DIRECTORY_SPECIALTY_MATCH"))),
			SuggestionLimit: suggestionLimit,
		},
	}

	return config, nil
}
