package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Sink names accepted by LOAD_SINKS.
const (
	SinkSupabase = "supabase"
	SinkPostgres = "postgres"
	SinkMongoDB  = "mongodb"
	SinkSheets   = "sheets"
)

// Config represents the full pipeline configuration surface.
type Config struct {
	Source   SourceConfig
	Supabase SupabaseConfig
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
	Sheets   SheetsConfig
	Sinks    []string
	LogLevel string
}

// SourceConfig holds options for the OpenDOSM data catalogue API.
type SourceConfig struct {
	BaseURL string
}

// SupabaseConfig contains the credentials of the primary sink.
// Missing values are reported by the supabase client when loading starts.
type SupabaseConfig struct {
	URL   string
	Key   string
	Table string
}

// PostgresConfig holds the DSN of the optional direct Postgres sink.
type PostgresConfig struct {
	DSN   string
	Table string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// SheetsConfig contains configuration required to mirror rows into Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when the environment is already populated.
		_ = godotenv.Load()
	}

	table := getenvWithDefault("SUPABASE_TABLE", "malaysia_labour_force")

	cfg := &Config{
		Source: SourceConfig{
			BaseURL: getenvWithDefault("OPENDOSM_BASE_URL", "https://api.data.gov.my"),
		},
		Supabase: SupabaseConfig{
			URL:   os.Getenv("SUPABASE_URL"),
			Key:   os.Getenv("SUPABASE_KEY"),
			Table: table,
		},
		Postgres: PostgresConfig{
			DSN:   os.Getenv("DATABASE_URL"),
			Table: table,
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGODB_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "labour"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", table),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "LabourForce!A:H"),
		},
		Sinks:    parseList(getenvWithDefault("LOAD_SINKS", SinkSupabase)),
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that structural configuration is coherent. Supabase
// credentials are intentionally left to the loader.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Source.BaseURL == "" {
		return errors.New("OPENDOSM_BASE_URL must not be empty")
	}

	if len(c.Sinks) == 0 {
		return errors.New("LOAD_SINKS must name at least one sink")
	}

	for _, sink := range c.Sinks {
		switch sink {
		case SinkSupabase:
			if c.Supabase.Table == "" {
				return errors.New("SUPABASE_TABLE must not be empty")
			}
		case SinkPostgres:
			if c.Postgres.DSN == "" {
				return errors.New("DATABASE_URL must be provided when the postgres sink is enabled")
			}
		case SinkMongoDB:
			switch {
			case c.MongoDB.URI == "":
				return errors.New("MONGODB_URI must be provided when the mongodb sink is enabled")
			case c.MongoDB.DBName == "":
				return errors.New("MONGODB_DB_NAME must not be empty")
			}
		case SinkSheets:
			switch {
			case c.Sheets.CredentialsPath == "":
				return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when the sheets sink is enabled")
			case c.Sheets.SpreadsheetID == "":
				return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when the sheets sink is enabled")
			case c.Sheets.Range == "":
				return errors.New("GOOGLE_SHEET_RANGE must not be empty")
			}
		default:
			return fmt.Errorf("unknown sink %q in LOAD_SINKS", sink)
		}
	}

	return nil
}

// Enabled reports whether the named sink was requested.
func (c *Config) Enabled(sink string) bool {
	for _, s := range c.Sinks {
		if s == sink {
			return true
		}
	}
	return false
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseList(value string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
