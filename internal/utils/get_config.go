package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppEnv      string `yaml:"APP_ENV"`
	LogDir      string `yaml:"LOG_DIR"`
	LoginURL    string `yaml:"LOGIN_URL"`
	BodyLimitMB string `yaml:"BODY_LIMIT_MB"`
	RateLimit   string `yaml:"RATE_LIMIT_MAX"`
	CORSOrigins string `yaml:"CORS_ALLOWED_ORIGINS"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	SQLitePath string `yaml:"SQLITE_PATH"`

	// MongoDB configuration
	MongoDBURI      string `yaml:"MONGODB_URI"`
	MongoDBDatabase string `yaml:"MONGODB_DATABASE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// File storage
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	UploadDir     string `yaml:"UPLOAD_DIR"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSS3Prefix  string `yaml:"AWS_S3_PREFIX"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":             "8080",
	"APP_ENV":              "development",
	"LOG_DIR":              "./logs",
	"LOGIN_URL":            "/auth/login",
	"BODY_LIMIT_MB":        "10",
	"RATE_LIMIT_MAX":       "20",
	"CORS_ALLOWED_ORIGINS": "*",
	"DB_DRIVER":            "postgres",
	"SQLITE_PATH":          "food_quality.db",
	"MONGODB_DATABASE":     "food_quality",
	"JWT_ISSUER":           "FOOD-QUALITY",
	"STORAGE_DRIVER":       "local",
	"UPLOAD_DIR":           "uploads",
	"AWS_S3_PREFIX":        "food-products",
}

// fields maps every config key onto its slot in config.
func fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":             &config.AppPort,
		"APP_ENV":              &config.AppEnv,
		"LOG_DIR":              &config.LogDir,
		"LOGIN_URL":            &config.LoginURL,
		"BODY_LIMIT_MB":        &config.BodyLimitMB,
		"RATE_LIMIT_MAX":       &config.RateLimit,
		"CORS_ALLOWED_ORIGINS": &config.CORSOrigins,
		"DB_DRIVER":            &config.DBDriver,
		"DB_USER":              &config.DBUser,
		"DB_NAME":              &config.DBName,
		"DB_PASSWORD":          &config.DBPassword,
		"DB_PORT":              &config.DBPort,
		"DB_HOST":              &config.DBHost,
		"SQLITE_PATH":          &config.SQLitePath,
		"MONGODB_URI":          &config.MongoDBURI,
		"MONGODB_DATABASE":     &config.MongoDBDatabase,
		"JWT_SECRET":           &config.JWTSecret,
		"JWT_ISSUER":           &config.JWTIssuer,
		"STORAGE_DRIVER":       &config.StorageDriver,
		"UPLOAD_DIR":           &config.UploadDir,
		"AWS_S3_BUCKET":        &config.AWSS3Bucket,
		"AWS_S3_REGION":        &config.AWSS3Region,
		"AWS_S3_PREFIX":        &config.AWSS3Prefix,
		"AWS_ACCESS_KEY":       &config.AWSAccessKey,
		"AWS_SECRET_KEY":       &config.AWSSecretKey,
	}
}

// LoadConfig reads the YAML file named by CONFIG_PATH (default config.yaml),
// then lets .env and process environment variables override it.
// Keys left empty fall back to defaults.
func LoadConfig() {
	config = Config{}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	_ = godotenv.Load()

	for key, slot := range fields() {
		if v := os.Getenv(key); v != "" {
			*slot = v
		}
		if *slot == "" {
			*slot = defaults[key]
		}
	}
}

func GetConfig(key string) string {
	if slot, ok := fields()[key]; ok {
		return *slot
	}
	return ""
}

// GetConfigInt returns the integer value of key, or def when unset or malformed.
func GetConfigInt(key string, def int) int {
	v := GetConfig(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid integer for %s: %s", key, v)
		return def
	}
	return n
}
