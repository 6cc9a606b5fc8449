package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	OTP        OTPConfig
	Delivery   DeliveryConfig
	SMS        SMSConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Cache      Cache
	Queue      QueueConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	CORSOrigins    []string      `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000" env-separator:","`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT        JWTConfig
	BcryptCost int `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

type JWTConfig struct {
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"240h"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type OTPConfig struct {
	Generator   string        `env:"OTP_GENERATOR" env-default:"digits" env-description:"one of digits/hotp"`
	TTL         time.Duration `env:"OTP_TTL" env-default:"10m"`
	Cooldown    time.Duration `env:"OTP_COOLDOWN" env-default:"60s"`
	MaxAttempts int           `env:"OTP_MAX_ATTEMPTS" env-default:"3"`
	AttemptsTTL time.Duration `env:"OTP_ATTEMPTS_TTL" env-default:"5m"`
	PendingTTL  time.Duration `env:"OTP_PENDING_PROFILE_TTL" env-default:"5m"`
}

type DeliveryConfig struct {
	Timeout time.Duration `env:"DELIVERY_TIMEOUT" env-default:"5s" env-description:"per-channel send timeout"`
}

type SMSConfig struct {
	Provider string `env:"SMS_PROVIDER" env-default:"disabled" env-description:"one of twilio/disabled"`
	Twilio   struct {
		AccountSID string `env:"TWILIO_ACCOUNT_SID" env-default:""`
		AuthToken  string `env:"TWILIO_AUTH_TOKEN" env-default:""`
		From       string `env:"TWILIO_PHONE_NUMBER" env-default:""`
	}
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-required:"true"`
	Port int    `env:"SMTP_PORT" env-required:"true"`
	From string `env:"SMTP_FROM" env-required:"true"`
	Pass string `env:"SMTP_PASS" env-required:"true"`
}

type EmailConfig struct {
	Enabled      bool   `env:"EMAIL_ENABLED" env-default:"false"`
	TemplatesDir string `env:"EMAIL_TEMPLATES_DIR" env-default:"./templates"`
	Templates    EmailTemplates
}

type EmailTemplates struct {
	Welcome string `env:"EMAIL_TEMPLATE_WELCOME" env-default:"welcome.html"`
}

type Cache struct {
	Type    string        `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Timeout time.Duration `env:"REDIS_TIMEOUT" env-default:"1s" env-description:"dial, read and write timeout"`
	Redis   struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type QueueConfig struct {
	Enabled       bool   `env:"QUEUE_ENABLED" env-default:"true"`
	Concurrency   int    `env:"QUEUE_CONCURRENCY" env-default:"10"`
	PurgeOTPsCron string `env:"QUEUE_PURGE_OTPS_CRON" env-default:"@every 1h"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return cfg
}
