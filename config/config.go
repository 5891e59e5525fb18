package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"boxoffice-tracker/models"
)

const (
	MinTopN = 5
	MaxTopN = 50
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath string `envconfig:"DATA_PATH" default:"./data/movie_revenue_data.csv"`
	Source   string `envconfig:"DATA_SOURCE" default:"csv" validate:"oneof=csv postgres"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"boxoffice"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"boxoffice"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"boxoffice"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	PostgresTable    string `envconfig:"POSTGRES_TABLE" default:"movies"`
	MaxRetries       int    `envconfig:"MAX_RETRIES" default:"3"`

	CSVOutputPath  string `envconfig:"CSV_OUTPUT_PATH" default:"./output/filtered_movies.csv"`
	XLSXOutputPath string `envconfig:"XLSX_OUTPUT_PATH"`
	PDFOutputPath  string `envconfig:"PDF_OUTPUT_PATH"`
	HTMLOutputPath string `envconfig:"HTML_OUTPUT_PATH"`
	ChromeBin      string `envconfig:"CHROME_BIN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	TopN      int    `envconfig:"TOP_N" default:"15"`
	TopMetric string `envconfig:"TOP_METRIC" default:"worldwide"`

	YearMin    int      `envconfig:"FILTER_YEAR_MIN"`
	YearMax    int      `envconfig:"FILTER_YEAR_MAX"`
	Genre      string   `envconfig:"FILTER_GENRE" default:"All"`
	Language   string   `envconfig:"FILTER_LANGUAGE" default:"All"`
	Region     string   `envconfig:"FILTER_REGION" default:"all"`
	RevenueMin *float64 `envconfig:"FILTER_REVENUE_MIN"`
	RevenueMax *float64 `envconfig:"FILTER_REVENUE_MAX"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.TopN = clampTopN(cfg.TopN)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Criteria converts the FILTER_* settings. A year bound of 0 and an unset
// revenue bound leave that side open; the year and revenue ranges are only
// applied when at least one side is set.
func (c *Config) Criteria() models.FilterCriteria {
	crit := models.FilterCriteria{
		Genre:    c.Genre,
		Language: c.Language,
		Region:   models.ParseRegionalFocus(c.Region),
	}

	if c.YearMin != 0 || c.YearMax != 0 {
		r := &models.IntRange{Lo: c.YearMin, Hi: c.YearMax}
		if c.YearMax == 0 {
			r.Hi = maxYear
		}
		crit.Years = r
	}

	if c.RevenueMin != nil || c.RevenueMax != nil {
		r := &models.FloatRange{Lo: 0, Hi: maxRevenueM}
		if c.RevenueMin != nil {
			r.Lo = *c.RevenueMin
		}
		if c.RevenueMax != nil {
			r.Hi = *c.RevenueMax
		}
		crit.Revenue = r
	}
	return crit
}

// Metric returns the ranking metric for the top performers view.
func (c *Config) Metric() models.Metric {
	return models.ParseMetric(c.TopMetric)
}

const (
	maxYear     = 9999
	maxRevenueM = 1e12
)

func clampTopN(n int) int {
	return min(max(n, MinTopN), MaxTopN)
}
