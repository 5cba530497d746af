package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env          string          `yaml:"env" env:"APP_ENV" env-default:"local"`
	LogLevel     string          `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogDir       string          `yaml:"log_dir" env:"LOG_DIR" env-default:"logs"`
	StoragePath  string          `yaml:"storage_path" env:"DATABASE_PATH" env-default:"./storage/casa_criativa.db"`
	QueryTimeout time.Duration   `yaml:"query_timeout" env:"QUERY_TIMEOUT" env-default:"5s"`
	HTTP         HTTPConfig      `yaml:"http"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	Redis        RedisConf       `yaml:"redis"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            string        `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimit       string        `yaml:"body_limit" env:"HTTP_BODY_LIMIT" env-default:"1M"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is honoured. Empty
	// means the client address is the TCP peer.
	TrustedProxies []string `yaml:"trusted_proxies" env:"HTTP_TRUSTED_PROXIES" env-separator:","`
}

// RateLimitConfig describes a fixed window: at most MaxRequests per client
// within WindowMS milliseconds.
type RateLimitConfig struct {
	WindowMS    int64 `yaml:"window_ms" env:"RATE_LIMIT_WINDOW_MS" env-default:"900000"`
	MaxRequests int   `yaml:"max_requests" env:"RATE_LIMIT_MAX_REQUESTS" env-default:"100"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMS) * time.Millisecond
}

// RedisConf is optional. An empty address keeps rate limit counters in memory.
type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	KeyPrefix     string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"casa_criativa"`
}

func MustLoad() *Config {
	loadDotEnv(".env")

	path := fetchConfigPath()
	if path == "" {
		cfg, err := LoadEnv()
		if err != nil {
			panic("cannot read config from env: " + err.Error())
		}

		return cfg
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the yaml file at configPath; environment variables override it.
func Load(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.New("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, errors.New("cannot read config: " + err.Error())
	}

	return &cfg, nil
}

func LoadEnv() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("cannot read " + path + ": " + err.Error())
	}
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
