package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type ServerConfig struct {
	Addr            string   `json:"addr"`
	Backend         string   `json:"backend"`
	DataFile        string   `json:"data_file"`
	DBPath          string   `json:"db_path"`
	DatabaseURL     string   `json:"database_url"`
	StaticDir       string   `json:"static_dir"` // empty serves the embedded assets
	CORSOrigins     []string `json:"cors_origins"`
	LogLevel        string   `json:"log_level"`
	LogDev          bool     `json:"log_dev"`
	ShutdownSeconds int      `json:"shutdown_seconds"`
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":5000",
		Backend:         BackendFile,
		DataFile:        "data/entries.json",
		DBPath:          "guestbook.db",
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		ShutdownSeconds: 10,
	}
}

// LoadServerConfig layers defaults, the optional JSON file at path and
// GUESTBOOK_* environment variables, in that order.
func LoadServerConfig(path string) (*ServerConfig, error) {
	c := DefaultServerConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(c)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyEnv(c *ServerConfig) {
	if v := os.Getenv("GUESTBOOK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GUESTBOOK_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("GUESTBOOK_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("GUESTBOOK_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GUESTBOOK_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GUESTBOOK_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("GUESTBOOK_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("GUESTBOOK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GUESTBOOK_LOG_DEV"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogDev = b
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *ServerConfig) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFile:
		if c.DataFile == "" {
			return errors.New("data_file is required for the file backend")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.ShutdownSeconds <= 0 {
		c.ShutdownSeconds = 10
	}
	return nil
}
