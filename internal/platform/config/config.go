package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/juju/errors"
)

// Drivers de almacenamiento soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
)

// Config agrupa todo lo que un servicio necesita para arrancar.
type Config struct {
	Port int `env:"PORT"`

	StoreDriver    string `env:"STORE_DRIVER,default=memory"`
	DBDSN          string `env:"DB_DSN"`
	MongoURL       string `env:"MONGO_URL,default=mongodb://127.0.0.1:27017"`
	MongoDB        string `env:"MONGO_DB"`
	SequenceDriver string `env:"SEQUENCE_DRIVER"`
	RedisAddr      string `env:"REDIS_ADDR,default=127.0.0.1:6379"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
	LogFile   string `env:"LOG_FILE"`
	AppName   string `env:"APP_NAME"`

	// Varios orígenes separados por ";".
	CORSOrigins []string `env:"CORS_ORIGINS,default=*"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Defaults son los valores propios de cada servicio (puerto, base mongo, nombre).
type Defaults struct {
	Port    int
	MongoDB string
	AppName string
}

// Load lee ENV_FILE (default .env, opcional) y luego el entorno.
func Load(d Defaults) (Config, error) {
	envFile := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Annotatef(err, "loading %s", envFile)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, errors.Annotate(err, "decoding environment")
	}

	cfg.applyDefaults(d)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(d Defaults) {
	if c.Port == 0 {
		c.Port = d.Port
	}
	if strings.TrimSpace(c.MongoDB) == "" {
		c.MongoDB = d.MongoDB
	}
	if strings.TrimSpace(c.AppName) == "" {
		c.AppName = d.AppName
	}
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver == "" {
		c.StoreDriver = DriverMemory
	}
	c.SequenceDriver = strings.ToLower(strings.TrimSpace(c.SequenceDriver))
	if c.SequenceDriver == "" {
		c.SequenceDriver = c.StoreDriver
	}
	if strings.TrimSpace(c.MongoURL) == "" {
		c.MongoURL = "mongodb://127.0.0.1:27017"
	}
	if strings.TrimSpace(c.RedisAddr) == "" {
		c.RedisAddr = "127.0.0.1:6379"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Validate revisa combinaciones de drivers y credenciales.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.NotValidf("port %d", c.Port)
	}

	switch c.StoreDriver {
	case DriverMemory, DriverMongo:
	case DriverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("DB_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return errors.NotValidf("STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.SequenceDriver {
	case c.StoreDriver, DriverRedis:
	default:
		return errors.NotValidf("SEQUENCE_DRIVER %q with STORE_DRIVER %q", c.SequenceDriver, c.StoreDriver)
	}
	return nil
}

// Addr devuelve la dirección de escucha (":3001").
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
