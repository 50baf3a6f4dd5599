package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	// PublicURL is the externally visible base URL, used to build the
	// password-reset link sent by email.
	PublicURL string
	HTTP      HTTP
	Admin     AdminHTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // enables rotated file output when set
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	CookieName        string
	CookieTTLDays     int
	CookieSecure      bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type S3 struct {
	Region    string
	Endpoint  string // non-empty for MinIO / custom endpoints
	AccessKey string
	SecretKey string
	Bucket    string
	Folder    string
	PublicURL string // base URL objects are served from
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Reset struct {
	TokenTTLMin int
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Redis Redis `mapstructure:"redis"`
	S3    S3    `mapstructure:"s3"`
	SMTP  SMTP  `mapstructure:"smtp"`
	Reset Reset
}

// Load reads the YAML config at path (APP_* env vars override individual
// keys) and returns the one Config instance the process passes around.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("jwt.cookiename", "token")
	v.SetDefault("jwt.cookiettldays", 5)
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("reset.tokenttlmin", 15)
	v.SetDefault("s3.folder", "avatars")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
