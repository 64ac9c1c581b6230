// Package config provides process level settings read from the environment
// and the application configuration consumed by the web application factory.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("EVENTUM_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("EVENTUM_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("EVENTUM_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/eventum"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("EVENTUM_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetSecretKey() string {
	return os.Getenv("EVENTUM_SECRET_KEY")
}

func GetListen() string {
	return os.Getenv("EVENTUM_LISTEN")
}

// GetPort returns EVENTUM_PORT, or 5000 when it is unset or not a number.
func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("EVENTUM_PORT"))
	if err != nil || port <= 0 {
		return 5000
	}
	return port
}
