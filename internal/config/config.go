package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "mini-othello/config.json"
)

// Themes accepted by cli.theme
var Themes = []string{"off", "brown", "green", "gray"}

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Dev  bool   `json:"dev"`
}

type WebConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StorageConfig struct {
	Path string `json:"path"` // empty disables the archive
}

// PacingConfig holds presentation delays; they have no effect on the rules
type PacingConfig struct {
	ThinkDelayMS int `json:"think_delay_ms"`
	PassDelayMS  int `json:"pass_delay_ms"`
}

type AIConfig struct {
	Seed uint64 `json:"seed"` // 0 seeds from the clock
}

type CLIConfig struct {
	Theme string `json:"theme"`
}

type SessionConfig struct {
	MaxSessions    int `json:"max_sessions"`
	IdleTTLMinutes int `json:"idle_ttl_minutes"`
}

type Config struct {
	Server  ServerConfig  `json:"server"`
	Web     WebConfig     `json:"web"`
	Storage StorageConfig `json:"storage"`
	Pacing  PacingConfig  `json:"pacing"`
	AI      AIConfig      `json:"ai"`
	CLI     CLIConfig     `json:"cli"`
	Session SessionConfig `json:"session"`
}

// InitConfig loads defaults overlaid with the XDG config file, if one exists
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return Load(absPath)
}

// Load reads the config at path over the defaults; an empty path yields the defaults
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, p := range []int{c.Server.Port, c.Web.Port} {
		if p < 1 || p > 65535 {
			return &InvalidConfig{fmt.Sprintf("port %d out of range", p)}
		}
	}
	if c.Pacing.ThinkDelayMS < 0 || c.Pacing.PassDelayMS < 0 {
		return &InvalidConfig{"pacing delays must not be negative"}
	}
	if c.Session.MaxSessions < 1 {
		return &InvalidConfig{"session.max_sessions must be at least 1"}
	}
	if c.Session.IdleTTLMinutes < 1 {
		return &InvalidConfig{"session.idle_ttl_minutes must be at least 1"}
	}
	if !ValidTheme(c.CLI.Theme) {
		return &InvalidConfig{fmt.Sprintf("unknown theme %q", c.CLI.Theme)}
	}
	return nil
}

func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

func (c *Config) ThinkDelay() time.Duration {
	return time.Duration(c.Pacing.ThinkDelayMS) * time.Millisecond
}

func (c *Config) PassDelay() time.Duration {
	return time.Duration(c.Pacing.PassDelayMS) * time.Millisecond
}

func (c *Config) IdleTTL() time.Duration {
	return time.Duration(c.Session.IdleTTLMinutes) * time.Minute
}

// Save writes the config to the user's XDG config directory
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	return c.SaveTo(absPath)
}

func (c *Config) SaveTo(path string) error {
	return saveCfgFile(path, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err = os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err = json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
