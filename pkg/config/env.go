// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	SwaggerHost string
	TZName      string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSchema   string

	JWTSecret  string
	JWTTTLDays int

	VerseDBPath       string
	DataDir           string
	SecondaryFileName string
	SecondaryDigest   string
	SecondarySource   string
	S3Region          string
	S3Bucket          string
	S3Key             string

	StorefrontCountry string
	LocalLanguage     string
	RestrictedRegion  string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SettingsNamespace string

	NotificationDays     int
	NotificationTick     time.Duration
	NotificationLanguage string
	NotifyDeviceID       string
	NotifyRecipients     []string
	SmtpFrom             string
	SmtpPassword         string
	SmtpHost             string
	SmtpPort             int
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost:8080"),
		TZName:      getEnv("TZ_NAME", "Local"),

		DBHost:     getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:     getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:     getEnv("BLUEPRINT_DB_DATABASE", "march16"),
		DBUser:     getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword: getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:   getEnv("BLUEPRINT_DB_SCHEMA", "public"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTTTLDays: getEnvInt("JWT_TTL_DAYS", 365),

		VerseDBPath:       getEnv("VERSE_DB_PATH", "data/March16DB.sqlite"),
		DataDir:           getEnv("DATA_DIR", "data"),
		SecondaryFileName: getEnv("SECONDARY_FILE_NAME", "March16DB_KJV.sqlite"),
		SecondaryDigest:   getEnv("SECONDARY_DIGEST", ""),
		SecondarySource:   getEnv("SECONDARY_SOURCE", ""),
		S3Region:          getEnv("S3_REGION", "us-east-2"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Key:             getEnv("S3_KEY", "March16DB_KJV.sqlite.xz"),

		StorefrontCountry: getEnv("STOREFRONT_COUNTRY", ""),
		LocalLanguage:     getEnv("LOCAL_LANGUAGE", "ko"),
		RestrictedRegion:  getEnv("RESTRICTED_REGION", "GBR"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		SettingsNamespace: getEnv("SETTINGS_NAMESPACE", "group.dev.sijun.March16"),

		NotificationDays:     getEnvInt("NOTIFICATION_DAYS", 7),
		NotificationTick:     getEnvDuration("NOTIFICATION_TICK", 30*time.Second),
		NotificationLanguage: getEnv("NOTIFICATION_LANGUAGE", "en"),
		NotifyDeviceID:       getEnv("NOTIFY_DEVICE_ID", ""),
		NotifyRecipients:     getEnvList("NOTIFY_RECIPIENTS"),
		SmtpFrom:             getEnv("SMTP_FROM", ""),
		SmtpPassword:         getEnv("SMTP_PASSWORD", ""),
		SmtpHost:             getEnv("SMTP_HOST", "smtp.gmail.com"),
		SmtpPort:             getEnvInt("SMTP_PORT", 587),
	}

	return cfg
}

// Location resolves TZ_NAME. "Local" or an unknown zone means the host zone.
func (c *Config) Location() *time.Location {
	if c.TZName == "" || c.TZName == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TZName)
	if err != nil {
		fmt.Printf("unknown TZ_NAME %q, using local time\n", c.TZName)
		return time.Local
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
