package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/hirenova/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "hirenova"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"

	DefaultListenAddr     = "127.0.0.1:8080"
	DefaultTimeoutSeconds = 30
)

// Config holds the settings shared by every command. Fields left out of
// config.json keep their defaults; environment variables win over both.
type Config struct {
	APIKey          string `json:"api_key"`
	APIHost         string `json:"api_host,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	DefaultLocation string `json:"default_location"`
	DefaultSort     string `json:"default_sort"`
	Fallback        bool   `json:"fallback"`
	ShowDegraded    bool   `json:"show_degraded"`
	ListenAddr      string `json:"listen_addr"`
}

func DefaultConfig() Config {
	return Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		DefaultSort:    "mostRelevant",
		Fallback:       true,
		ListenAddr:     DefaultListenAddr,
	}
}

// Timeout is the request timeout. Zero disables it.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ClientConfig maps the settings onto the transport. A disabled timeout
// is passed as negative because zero selects the transport default.
func (c Config) ClientConfig(proxies []string) models.ClientConfig {
	timeout := c.Timeout()
	if timeout == 0 {
		timeout = -1
	}
	return models.ClientConfig{Proxies: proxies, Timeout: timeout}
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("HIRENOVA_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads config.json (json5 syntax) and applies the HIRENOVA_*
// environment overrides. A missing file is not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return applyEnv(DefaultConfig()), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return applyEnv(cfg), nil
	case err != nil:
		return applyEnv(cfg), err
	}

	if strings.TrimSpace(string(data)) != "" {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return applyEnv(DefaultConfig()), fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if key := firstEnv("HIRENOVA_RAPIDAPI_KEY", "RAPIDAPI_KEY"); key != "" {
		cfg.APIKey = key
	}
	if loc := firstEnv("HIRENOVA_DEFAULT_LOCATION"); loc != "" {
		cfg.DefaultLocation = loc
	}
	if raw := firstEnv("HIRENOVA_TIMEOUT"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			cfg.TimeoutSeconds = seconds
		} else if d, err := time.ParseDuration(raw); err == nil {
			cfg.TimeoutSeconds = durationSeconds(d)
		}
	}
	if addr := firstEnv("HIRENOVA_LISTEN"); addr != "" {
		cfg.ListenAddr = addr
	}
	return cfg
}

// durationSeconds rounds a positive duration up to whole seconds so that a
// short timeout never turns into 0, which disables it.
func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Init writes a default config.json and an empty proxies.txt if they
// don't already exist. The API key is never written.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, nil, 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	cfg.APIKey = ""
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// LoadProxies resolves the proxy list: flag, then HIRENOVA_PROXIES, then
// proxies.txt (one per line, # comments).
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}
	if env := firstEnv("HIRENOVA_PROXIES"); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
