package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eventum/eventum/util/random"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultDBName      = "eventum"
	defaultSessionName = "eventum"
)

// AppConfig holds the options recognised by the web application factory.
type AppConfig struct {
	DBName         string `toml:"db_name" yaml:"db_name"`
	DBFolder       string `toml:"db_folder" yaml:"db_folder"`
	Testing        bool   `toml:"testing" yaml:"testing"`
	CSRFEnabled    bool   `toml:"csrf_enabled" yaml:"csrf_enabled"`
	WTFCSRFEnabled bool   `toml:"wtf_csrf_enabled" yaml:"wtf_csrf_enabled"`
	SecretKey      string `toml:"secret_key" yaml:"secret_key"`
	SessionName    string `toml:"session_name" yaml:"session_name"`
	BaseDir        string `toml:"base_dir" yaml:"base_dir"`
	Listen         string `toml:"listen" yaml:"listen"`
	Port           int    `toml:"port" yaml:"port"`
}

// Option mutates an AppConfig while it is being built.
type Option func(*AppConfig)

func WithDBName(name string) Option {
	return func(c *AppConfig) { c.DBName = name }
}

func WithDBFolder(folder string) Option {
	return func(c *AppConfig) { c.DBFolder = folder }
}

func WithTesting(testing bool) Option {
	return func(c *AppConfig) { c.Testing = testing }
}

func WithCSRF(enabled bool) Option {
	return func(c *AppConfig) { c.CSRFEnabled = enabled }
}

func WithWTFCSRF(enabled bool) Option {
	return func(c *AppConfig) { c.WTFCSRFEnabled = enabled }
}

func WithSecretKey(key string) Option {
	return func(c *AppConfig) { c.SecretKey = key }
}

func WithBaseDir(dir string) Option {
	return func(c *AppConfig) { c.BaseDir = dir }
}

func WithListen(listen string, port int) Option {
	return func(c *AppConfig) {
		c.Listen = listen
		c.Port = port
	}
}

// NewAppConfig returns the defaults taken from the environment with opts applied in order.
func NewAppConfig(opts ...Option) *AppConfig {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}
	secret := GetSecretKey()
	if secret == "" {
		secret = random.Seq(32)
	}
	c := &AppConfig{
		DBName:         defaultDBName,
		DBFolder:       GetDBFolderPath(),
		CSRFEnabled:    true,
		WTFCSRFEnabled: true,
		SecretKey:      secret,
		SessionName:    defaultSessionName,
		BaseDir:        baseDir,
		Listen:         GetListen(),
		Port:           GetPort(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadFile overlays the values found in a TOML or YAML file, chosen by extension.
// Keys missing from the file keep their current values.
func (c *AppConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file type: %s", path)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// CSRFProtection reports whether unsafe requests must carry a CSRF token.
// Both toggles have to be on.
func (c *AppConfig) CSRFProtection() bool {
	return c.CSRFEnabled && c.WTFCSRFEnabled
}

func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DBFolder, c.DBName+".db")
}

func (c *AppConfig) Validate() error {
	if c.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if strings.ContainsAny(c.DBName, `/\`) {
		return fmt.Errorf("database name must not contain path separators: %s", c.DBName)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key cannot be empty")
	}
	if c.SessionName == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}
