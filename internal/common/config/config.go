package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"geoboard/internal/engine"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBPath      string
	ProjectsDir string
	Language    string
	CORSOrigins []string
	SessionTTL  int

	SnapRadiusPx float64
	BaseGridSize float64
	MinZoom      float64
	MaxZoom      float64
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		DBPath:      getEnv("DB_PATH", "data/db/geoboard.db"),
		ProjectsDir: getEnv("PROJECTS_DIR", "projects"),
		Language:    getEnv("LANGUAGE", "en"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		SessionTTL:  getEnvAsInt("SESSION_TTL", 1800),

		SnapRadiusPx: getEnvAsFloat("SNAP_RADIUS_PX", engine.DefaultSnapRadiusPx),
		BaseGridSize: getEnvAsFloat("BASE_GRID_SIZE", 50),
		MinZoom:      getEnvAsFloat("MIN_ZOOM", 0.01),
		MaxZoom:      getEnvAsFloat("MAX_ZOOM", 10),
	}
}

// Engine собирает конфигурацию движка для холста width×height.
func (c *Config) Engine(width, height float64) engine.Config {
	return engine.Config{
		Width:        width,
		Height:       height,
		BaseGridSize: c.BaseGridSize,
		SnapRadiusPx: c.SnapRadiusPx,
		MinZoom:      c.MinZoom,
		MaxZoom:      c.MaxZoom,
	}
}

func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
