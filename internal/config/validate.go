package config

import (
	"fmt"
	"net/url"
	"regexp"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Target.URL == "" {
		return fmt.Errorf("target.url is required")
	}
	if err := ValidateURL(cfg.Target.URL); err != nil {
		return fmt.Errorf("target.url: %w", err)
	}
	if cfg.Target.ProfilePattern == "" {
		return fmt.Errorf("target.profile_pattern is required")
	}
	if _, err := regexp.Compile(cfg.Target.ProfilePattern); err != nil {
		return fmt.Errorf("target.profile_pattern is not a valid regexp: %w", err)
	}
	if cfg.Target.PaginationSelector == "" {
		return fmt.Errorf("target.pagination_selector is required")
	}

	if cfg.Scrape.RetryCount < 1 {
		return fmt.Errorf("scrape.retry_count must be >= 1, got %d", cfg.Scrape.RetryCount)
	}
	if cfg.Scrape.NavTimeout <= 0 {
		return fmt.Errorf("scrape.nav_timeout must be > 0")
	}
	if cfg.Scrape.SettleDuration < 0 {
		return fmt.Errorf("scrape.settle_duration must be >= 0")
	}
	if cfg.Scrape.FetchMode != "browser" && cfg.Scrape.FetchMode != "http" {
		return fmt.Errorf("scrape.fetch_mode must be 'browser' or 'http', got %q", cfg.Scrape.FetchMode)
	}

	if cfg.Export.CSV.Path == "" {
		return fmt.Errorf("export.csv.path is required")
	}
	if cfg.Export.Sheets.Enabled {
		if cfg.Export.Sheets.SheetID == "" {
			return fmt.Errorf("export.sheets.sheet_id is required when the sheets sink is enabled")
		}
		if cfg.Export.Sheets.CredentialsFile == "" {
			return fmt.Errorf("export.sheets.credentials_file is required when the sheets sink is enabled")
		}
	}
	if cfg.Export.Mongo.Enabled {
		if cfg.Export.Mongo.URI == "" {
			return fmt.Errorf("export.mongo.uri is required when the mongo sink is enabled")
		}
		if cfg.Export.Mongo.Database == "" || cfg.Export.Mongo.Collection == "" {
			return fmt.Errorf("export.mongo.database and export.mongo.collection are required when the mongo sink is enabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a scrape target.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
