package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8000"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBSource string `envconfig:"DB_SOURCE" default:"store_rating.db"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	// อ่าน role ล่าสุดจาก DB ทุก request แทนค่าที่ฝังใน token
	AuthRefreshRole bool `envconfig:"AUTH_REFRESH_ROLE" default:"false"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	AdminName     string `envconfig:"ADMIN_NAME" default:"System Administrator Account"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// LoadConfig อ่าน .env (ถ้ามี) แล้วเติมค่าจาก environment
func LoadConfig() (*Config, error) {
	// logger จริงยังไม่ถูกสร้าง ใช้ standard logger ของ logrus ไปก่อน
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Info("no .env file, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

// Addr ที่ http.Server ใช้ listen
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
