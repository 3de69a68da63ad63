package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"gastos/internal/analysis"
	"gastos/internal/core"
)

// Ledger source kinds.
const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"
	SourceSQLite = "sqlite"
)

// Ledger encodings accepted by the CSV source.
const (
	EncodingAuto   = "auto"
	EncodingLatin1 = "latin-1"
	EncodingUTF8   = "utf-8"
)

type Config struct {
	// Ledger source
	LedgerSource    string
	LedgerPath      string
	LedgerDelimiter string
	LedgerEncoding  string
	CurrencyPrefix  string

	// Analysis
	TopK int

	// SQLite ledger store
	SQLiteDBPath string

	// Google Sheets source
	GoogleSpreadsheetID string
	GoogleSheetRange    string

	// AMQP report publishing
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Reports
	ReportXLSXPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadEnvFile loads a .env file for local runs. A missing file is not an error.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

func Load() *Config {
	return &Config{
		LedgerSource:    getEnv("LEDGER_SOURCE", SourceCSV),
		LedgerPath:      getEnv("LEDGER_PATH", "gastos_mensual.csv"),
		LedgerDelimiter: getEnv("LEDGER_DELIMITER", ";"),
		LedgerEncoding:  getEnv("LEDGER_ENCODING", EncodingAuto),
		CurrencyPrefix:  getEnv("CURRENCY_PREFIX", core.DefaultCurrencyPrefix),

		TopK: getEnvInt("TOP_K", analysis.DefaultTopK),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/gastos.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetRange:    getEnv("GOOGLE_SHEET_RANGE", "Gastos!A:E"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "gastos"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "gastos.report"),

		ReportXLSXPath: getEnv("REPORT_XLSX_PATH", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Delimiter returns the ledger delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.LedgerDelimiter)
	return r
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.LedgerSource {
	case SourceCSV:
		if strings.TrimSpace(c.LedgerPath) == "" {
			errors = append(errors, "ledger path cannot be empty when using csv source")
		}
	case SourceSQLite:
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		}
	case SourceSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetRange == "" {
			errors = append(errors, "Google Sheet range is required when using sheets source")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid ledger source '%s': must be one of %v",
			c.LedgerSource, []string{SourceCSV, SourceSheets, SourceSQLite}))
	}

	if utf8.RuneCountInString(c.LedgerDelimiter) != 1 {
		errors = append(errors, fmt.Sprintf("invalid ledger delimiter '%s': must be a single character", c.LedgerDelimiter))
	} else if d := c.Delimiter(); d == '"' || d == '\r' || d == '\n' || d == utf8.RuneError {
		errors = append(errors, fmt.Sprintf("invalid ledger delimiter %q", d))
	}

	switch c.LedgerEncoding {
	case EncodingAuto, EncodingLatin1, EncodingUTF8:
	default:
		errors = append(errors, fmt.Sprintf("invalid ledger encoding '%s': must be one of %v",
			c.LedgerEncoding, []string{EncodingAuto, EncodingLatin1, EncodingUTF8}))
	}

	if c.TopK < 1 {
		errors = append(errors, fmt.Sprintf("invalid top k %d: must be at least 1", c.TopK))
	} else if c.TopK > 1000 {
		errors = append(errors, fmt.Sprintf("invalid top k %d: must be at most 1000", c.TopK))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if c.ReportXLSXPath != "" && !strings.HasSuffix(strings.ToLower(c.ReportXLSXPath), ".xlsx") {
		errors = append(errors, fmt.Sprintf("invalid report path '%s': must end in .xlsx", c.ReportXLSXPath))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
