package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): env vars > config file > defaults.
// The spreadsheet identifier can be overridden via
// MEMBERSCOUT_EXPORT_SHEETS_SHEET_ID.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("MEMBERSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("memberscout")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".memberscout"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("target.url", cfg.Target.URL)
	v.SetDefault("target.profile_pattern", cfg.Target.ProfilePattern)
	v.SetDefault("target.pagination_selector", cfg.Target.PaginationSelector)

	v.SetDefault("scrape.retry_count", cfg.Scrape.RetryCount)
	v.SetDefault("scrape.nav_timeout", cfg.Scrape.NavTimeout)
	v.SetDefault("scrape.settle_duration", cfg.Scrape.SettleDuration)
	v.SetDefault("scrape.control_wait", cfg.Scrape.ControlWait)
	v.SetDefault("scrape.fetch_mode", cfg.Scrape.FetchMode)
	v.SetDefault("scrape.headless", cfg.Scrape.Headless)

	v.SetDefault("extract.first_name_label", cfg.Extract.FirstNameLabel)
	v.SetDefault("extract.last_name_label", cfg.Extract.LastNameLabel)
	v.SetDefault("extract.email_label", cfg.Extract.EmailLabel)
	v.SetDefault("extract.city_label", cfg.Extract.CityLabel)
	v.SetDefault("extract.province_label", cfg.Extract.ProvinceLabel)
	v.SetDefault("extract.website_label", cfg.Extract.WebsiteLabel)
	v.SetDefault("extract.phone_label", cfg.Extract.PhoneLabel)
	v.SetDefault("extract.member_type_label", cfg.Extract.MemberTypeLabel)

	v.SetDefault("export.csv.path", cfg.Export.CSV.Path)
	v.SetDefault("export.sheets.enabled", cfg.Export.Sheets.Enabled)
	v.SetDefault("export.sheets.sheet_id", cfg.Export.Sheets.SheetID)
	v.SetDefault("export.sheets.credentials_file", cfg.Export.Sheets.CredentialsFile)
	v.SetDefault("export.sheets.clear_range", cfg.Export.Sheets.ClearRange)
	v.SetDefault("export.mongo.enabled", cfg.Export.Mongo.Enabled)
	v.SetDefault("export.mongo.uri", cfg.Export.Mongo.URI)
	v.SetDefault("export.mongo.database", cfg.Export.Mongo.Database)
	v.SetDefault("export.mongo.collection", cfg.Export.Mongo.Collection)

	v.SetDefault("snapshot.enabled", cfg.Snapshot.Enabled)
	v.SetDefault("snapshot.dir", cfg.Snapshot.Dir)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
}
