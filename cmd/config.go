package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"orderdesk"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"orderdesk"`

	// AMQPURL enables order event fan-out when set.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"orderdesk.events"`

	JWTSecret         string        `env:"JWT_SECRET"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"12h"`
	StaffEmail        string        `env:"STAFF_EMAIL"`
	StaffPasswordHash string        `env:"STAFF_PASSWORD_HASH"`

	EggBoxPrice  string `env:"EGG_BOX_PRICE" envDefault:"2"`
	OilCanPrice  string `env:"OIL_CAN_PRICE" envDefault:"4"`
	EggsPerBox   int    `env:"EGGS_PER_BOX" envDefault:"20"`
	LitersPerCan int    `env:"LITERS_PER_CAN" envDefault:"3"`

	// Cron expressions with a seconds field. An empty RefreshSchedule disables the job.
	RefreshSchedule    string `env:"REFRESH_SCHEDULE"`
	StatisticsSchedule string `env:"STATISTICS_SCHEDULE" envDefault:"0 * * * * *"`
}

// LoadConfig reads dotenvPath, when it exists, into the environment without overriding
// variables already set, then parses the environment.
func LoadConfig(dotenvPath string) (Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var problems []error
	switch c.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres, StoreDriverMongo:
	default:
		problems = append(problems, fmt.Errorf("STORE_DRIVER must be memory, postgres or mongo, got %q", c.StoreDriver))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET must be set"))
	}
	if c.StaffEmail == "" || c.StaffPasswordHash == "" {
		problems = append(problems, errors.New("STAFF_EMAIL and STAFF_PASSWORD_HASH must be set"))
	}
	if c.StatisticsSchedule == "" {
		problems = append(problems, errors.New("STATISTICS_SCHEDULE must be set"))
	}
	if _, err := c.Catalog(); err != nil {
		problems = append(problems, fmt.Errorf("catalog: %w", err))
	}
	return errors.Join(problems...)
}

// Catalog builds the price list injected into the submission pipeline.
func (c Config) Catalog() (order.Catalog, error) {
	eggBoxPrice, err := kernel.ParseMoney(c.EggBoxPrice)
	if err != nil {
		return order.Catalog{}, fmt.Errorf("EGG_BOX_PRICE: %w", err)
	}
	oilCanPrice, err := kernel.ParseMoney(c.OilCanPrice)
	if err != nil {
		return order.Catalog{}, fmt.Errorf("OIL_CAN_PRICE: %w", err)
	}
	return order.NewCatalog(eggBoxPrice, oilCanPrice, c.EggsPerBox, c.LitersPerCan)
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
