package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for memberscout.
type Config struct {
	Target   TargetConfig   `mapstructure:"target"   yaml:"target"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"   yaml:"scrape"`
	Extract  ExtractConfig  `mapstructure:"extract"  yaml:"extract"`
	Export   ExportConfig   `mapstructure:"export"   yaml:"export"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// TargetConfig identifies the directory being scraped.
type TargetConfig struct {
	// URL is the directory root page with the pagination control.
	URL string `mapstructure:"url" yaml:"url"`

	// ProfilePattern is a regexp; anchors whose resolved href matches are
	// treated as profile links.
	ProfilePattern string `mapstructure:"profile_pattern" yaml:"profile_pattern"`

	// PaginationSelector locates the page-size <select> control.
	PaginationSelector string `mapstructure:"pagination_selector" yaml:"pagination_selector"`
}

// ScrapeConfig controls session behavior and retries.
type ScrapeConfig struct {
	RetryCount     int           `mapstructure:"retry_count"     yaml:"retry_count"`
	NavTimeout     time.Duration `mapstructure:"nav_timeout"     yaml:"nav_timeout"`
	SettleDuration time.Duration `mapstructure:"settle_duration" yaml:"settle_duration"`
	ControlWait    time.Duration `mapstructure:"control_wait"    yaml:"control_wait"`

	// FetchMode selects how profile pages are loaded: "browser" drives the
	// shared session, "http" fetches them directly.
	FetchMode string `mapstructure:"fetch_mode" yaml:"fetch_mode"`

	Headless bool `mapstructure:"headless" yaml:"headless"`
}

// ExtractConfig maps profile labels to record fields. An empty label leaves
// the corresponding field empty.
type ExtractConfig struct {
	FirstNameLabel  string `mapstructure:"first_name_label"  yaml:"first_name_label"`
	LastNameLabel   string `mapstructure:"last_name_label"   yaml:"last_name_label"`
	EmailLabel      string `mapstructure:"email_label"       yaml:"email_label"`
	CityLabel       string `mapstructure:"city_label"        yaml:"city_label"`
	ProvinceLabel   string `mapstructure:"province_label"    yaml:"province_label"`
	WebsiteLabel    string `mapstructure:"website_label"     yaml:"website_label"`
	PhoneLabel      string `mapstructure:"phone_label"       yaml:"phone_label"`
	MemberTypeLabel string `mapstructure:"member_type_label" yaml:"member_type_label"`
}

// ExportConfig controls the output sinks.
type ExportConfig struct {
	CSV    CSVConfig    `mapstructure:"csv"    yaml:"csv"`
	Sheets SheetsConfig `mapstructure:"sheets" yaml:"sheets"`
	Mongo  MongoConfig  `mapstructure:"mongo"  yaml:"mongo"`
}

// CSVConfig controls the authoritative file sink.
type CSVConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// SheetsConfig controls the best-effort Google Sheets sink.
type SheetsConfig struct {
	Enabled         bool   `mapstructure:"enabled"          yaml:"enabled"`
	SheetID         string `mapstructure:"sheet_id"         yaml:"sheet_id"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	ClearRange      string `mapstructure:"clear_range"      yaml:"clear_range"`
}

// MongoConfig controls the optional archive sink.
type MongoConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// SnapshotConfig controls diagnostic page screenshots.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir"     yaml:"dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			ProfilePattern:     `/members?/`,
			PaginationSelector: "select",
		},
		Scrape: ScrapeConfig{
			RetryCount:     3,
			NavTimeout:     30 * time.Second,
			SettleDuration: 2 * time.Second,
			ControlWait:    10 * time.Second,
			FetchMode:      "browser",
			Headless:       true,
		},
		Extract: ExtractConfig{
			FirstNameLabel: "First name",
			LastNameLabel:  "Last name",
			EmailLabel:     "Email",
			CityLabel:      "City",
			ProvinceLabel:  "Province",
			WebsiteLabel:   "Website",
		},
		Export: ExportConfig{
			CSV: CSVConfig{
				Path: "./members.csv",
			},
			Sheets: SheetsConfig{
				CredentialsFile: "./credentials.json",
				ClearRange:      "A1:Z10000",
			},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "memberscout",
				Collection: "members",
			},
		},
		Snapshot: SnapshotConfig{
			Enabled: false,
			Dir:     "./snapshots",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
