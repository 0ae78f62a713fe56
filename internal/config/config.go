package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Report   ReportConfig   `toml:"report"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
}

// SMTPConfig configures the outgoing mail relay. With an empty Host,
// notifications are logged instead of sent.
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	From     string `toml:"from"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// ReportConfig drives the weekly report command.
type ReportConfig struct {
	// Usernames to send the weekly report to; empty means every active
	// user.
	Recipients []string `toml:"recipients"`
}

func (s SMTPConfig) Enabled() bool {
	return strings.TrimSpace(s.Host) != ""
}

func (s SMTPConfig) Addr() string {
	return net.JoinHostPort(s.Host, fmt.Sprintf("%d", s.Port))
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{Path: dbPath},
		Server:   ServerConfig{Bind: "127.0.0.1:8700"},
		SMTP:     SMTPConfig{Port: 25, From: "pmt@localhost"},
	}
}

// Load reads a TOML config over the given defaults. A blank path or a
// missing file yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server bind address is required")
	}
	if c.SMTP.Enabled() {
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return fmt.Errorf("invalid smtp.port: %d", c.SMTP.Port)
		}
		if strings.TrimSpace(c.SMTP.From) == "" {
			return errors.New("smtp.from is required when smtp.host is set")
		}
	}
	return nil
}
