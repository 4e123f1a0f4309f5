package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	// Verzeichnis, in dem die CSV-Extrakte der Studie liegen.
	UploadDir string `envconfig:"UPLOAD_DIR" default:"."`

	// Bricht den Lauf beim ersten fehlgeschlagenen Datensatz ab.
	FailFast bool `envconfig:"FAIL_FAST" default:"false"`

	// Retries gelten nur für transiente Store-Fehler, nie für Datenfehler.
	MaxRetries    int           `envconfig:"MAX_RETRIES" default:"2"`
	RetryBackoff  time.Duration `envconfig:"RETRY_BACKOFF" default:"500ms"`
	RecordTimeout time.Duration `envconfig:"RECORD_TIMEOUT" default:"30s"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 0 * * *"`
	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
