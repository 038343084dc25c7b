package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	LogPath         string
	PomodoroMinutes int
	BreakMinutes    int
}

// Load reads configuration from the environment, after sourcing a .env
// file when one is present. Every value has a working default.
func Load() *Config {
	_ = godotenv.Load(".env")

	dataDir := getEnv("TUGAS_DATA_DIR", defaultDataDir())

	return &Config{
		DBPath:          getEnv("TUGAS_DB_PATH", filepath.Join(dataDir, "tugas.db")),
		LogPath:         getEnv("TUGAS_LOG_PATH", filepath.Join(dataDir, "tugas.log")),
		PomodoroMinutes: getEnvInt("TUGAS_POMODORO_MINUTES", 25),
		BreakMinutes:    getEnvInt("TUGAS_BREAK_MINUTES", 5),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tugas"
	}
	return filepath.Join(home, ".tugas")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
