package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           string
		AllowedOrigins []string
		RateLimit      int // requests per minute per IP
	}
	Concepts struct {
		BaseURL string
		APIKey  string
	}
	Search struct {
		Addresses []string
		Index     string
		Username  string
		Password  string
	}
	Savings struct {
		PerPatent int
		Currency  string
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:8000", "http://127.0.0.1:8000"})
	viper.SetDefault("server.rate_limit", 60)
	viper.SetDefault("search.index", "patents")
	viper.SetDefault("savings.per_patent", 15000)
	viper.SetDefault("savings.currency", "£")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	config.Server.RateLimit = viper.GetInt("server.rate_limit")
	config.Search.Index = viper.GetString("search.index")
	config.Search.Addresses = viper.GetStringSlice("search.addresses")
	config.Savings.PerPatent = viper.GetInt("savings.per_patent")
	config.Savings.Currency = viper.GetString("savings.currency")

	// Secrets and endpoints come from the environment only
	config.Concepts.APIKey = os.Getenv("CONCEPTS_API_KEY")
	config.Concepts.BaseURL = os.Getenv("CONCEPTS_BASE_URL")
	if addrs := os.Getenv("SEARCH_ADDRESSES"); addrs != "" {
		config.Search.Addresses = strings.Split(addrs, ",")
	}
	config.Search.Username = os.Getenv("SEARCH_USERNAME")
	config.Search.Password = os.Getenv("SEARCH_PASSWORD")

	return &config, nil
}

// ConceptsConfigured reports whether the external concept-extraction
// service is usable. When false the stoplist extractor runs alone.
func (c *Config) ConceptsConfigured() bool {
	return c.Concepts.APIKey != "" && c.Concepts.BaseURL != ""
}

// LiveSearchConfigured reports whether a live patent-search backend is
// configured. When false every query is served from the curated catalog.
func (c *Config) LiveSearchConfigured() bool {
	return len(c.Search.Addresses) > 0
}

func (c *Config) ValidateSavings() error {
	if c.Savings.PerPatent <= 0 {
		return fmt.Errorf("savings.per_patent must be positive, got %d", c.Savings.PerPatent)
	}
	return nil
}
