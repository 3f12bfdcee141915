package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ClinicName         string
	DataDir            string
	TreatmentsFile     string
	AppointmentsFile   string
	RecordsDir         string
	ExportDir          string
	PrintCommand       string
	PrintCleanupDelay  time.Duration
	DefaultVIPDiscount int
	LogLevel           string
}

// Load reads configuration from environment variables. The defaults
// reproduce the classic layout: both stores and the output folders live in
// the working directory, so a bare launch consumes no environment at all.
func Load() *Config {
	return &Config{
		ClinicName:         getEnv("CLINIC_NAME", "Reimagine Hair Transplant & Skin Care Clinic"),
		DataDir:            getEnv("CLINIC_DATA_DIR", "."),
		TreatmentsFile:     getEnv("CLINIC_TREATMENTS_FILE", "treatments.json"),
		AppointmentsFile:   getEnv("CLINIC_APPOINTMENTS_FILE", "appointments.json"),
		RecordsDir:         getEnv("CLINIC_RECORDS_DIR", "records"),
		ExportDir:          getEnv("CLINIC_EXPORT_DIR", "txt"),
		PrintCommand:       getEnv("CLINIC_PRINT_COMMAND", "lp"),
		PrintCleanupDelay:  getEnvAsDuration("CLINIC_PRINT_CLEANUP_DELAY", 5*time.Second),
		DefaultVIPDiscount: getEnvAsInt("CLINIC_DEFAULT_VIP_DISCOUNT", 10),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// TreatmentsPath is the catalog file location under the data directory.
func (c *Config) TreatmentsPath() string {
	return filepath.Join(c.DataDir, c.TreatmentsFile)
}

// AppointmentsPath is the appointment file location under the data directory.
func (c *Config) AppointmentsPath() string {
	return filepath.Join(c.DataDir, c.AppointmentsFile)
}

// RecordsPath is the per-day records directory under the data directory.
func (c *Config) RecordsPath() string {
	return filepath.Join(c.DataDir, c.RecordsDir)
}

// ExportPath is the explicit-save directory under the data directory.
func (c *Config) ExportPath() string {
	return filepath.Join(c.DataDir, c.ExportDir)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
