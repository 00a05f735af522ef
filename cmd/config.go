package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// TestDBName is the database behind the "test" environment. Empty
	// disables that environment.
	TestDBName string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	KafkaHost           string
	ShipmentEventsTopic string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RelayURL     string
	RelayPort    string
	MailUser     string
	MailPassword string
	AdminEmail   string
	SMTPHost     string
	SMTPPort     int

	ReportSchedule string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_NAME", "shipflow")
	v.SetDefault("JWT_ISSUER", "shipflow")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("SHIPMENT_EVENTS_TOPIC", "shipment-events")
	v.SetDefault("MINIO_BUCKET", "shipflow")
	v.SetDefault("RELAY_PORT", "3001")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)

	return Config{
		HTTPPort:        v.GetString("HTTP_PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),
		TestDBName: v.GetString("TEST_DB_NAME"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTIssuer: v.GetString("JWT_ISSUER"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		KafkaHost:           v.GetString("KAFKA_HOST"),
		ShipmentEventsTopic: v.GetString("SHIPMENT_EVENTS_TOPIC"),

		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioBucket:    v.GetString("MINIO_BUCKET"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),

		RelayURL:     v.GetString("RELAY_URL"),
		RelayPort:    v.GetString("RELAY_PORT"),
		MailUser:     v.GetString("MAIL_USER"),
		MailPassword: v.GetString("MAIL_PASSWORD"),
		AdminEmail:   v.GetString("ADMIN_EMAIL"),
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),

		ReportSchedule: v.GetString("SIGNOFF_REPORT_SCHEDULE"),
	}
}

// DSN builds a PostgreSQL connection string for dbName on the configured server.
func (c Config) DSN(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) String() string {
	return fmt.Sprintf("http=:%s db=%s@%s:%s/%s test_db=%q kafka=%v minio=%q relay=%q",
		c.HTTPPort, c.DBUser, c.DBHost, c.DBPort, c.DBName, c.TestDBName, c.KafkaBrokers(), c.MinioEndpoint, c.RelayURL)
}
