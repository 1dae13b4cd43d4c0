package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Blog      BlogConfig      `mapstructure:"blog"`
	Shop      ShopConfig      `mapstructure:"shop"`
	Log       LogConfig       `mapstructure:"log"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Mode         string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// BaseURL 用于拼接分享邮件中的绝对链接；为空时取请求的 scheme + host
	BaseURL string `mapstructure:"base_url"`
	// AllowedHosts 未配置 BaseURL 时可信的 Host 头，支持 "*" 与 ".example.com" 子域写法
	AllowedHosts []string `mapstructure:"allowed_hosts"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres, sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogLevel     string `mapstructure:"log_level"` // silent, error, warn, info
}

// RedisConfig 缓存配置
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MailConfig 邮件发送配置
type MailConfig struct {
	Backend   string `mapstructure:"backend"` // console, smtp
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	QueueSize int    `mapstructure:"queue_size"`
	Workers   int    `mapstructure:"workers"`
}

// BlogConfig 博客相关参数
type BlogConfig struct {
	PageSize       int     `mapstructure:"page_size"`
	SimilarLimit   int     `mapstructure:"similar_limit"`
	SearchMinRank  float64 `mapstructure:"search_min_rank"`
	SearchLanguage string  `mapstructure:"search_language"`
	FeedSize       int     `mapstructure:"feed_size"`
	Timezone       string  `mapstructure:"timezone"`
}

// Location 返回博客发布时间所用时区
func (b BlogConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ShopConfig 商店配置
type ShopConfig struct {
	PostalCountry string `mapstructure:"postal_country"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// RateLimitConfig 表单提交接口的限流参数（按客户端 IP）
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.allowed_hosts", []string{"localhost", "127.0.0.1"})
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "blog.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("mail.backend", "console")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "noreply@example.com")
	v.SetDefault("mail.queue_size", 1000)
	v.SetDefault("mail.workers", 2)

	v.SetDefault("blog.page_size", 3)
	v.SetDefault("blog.similar_limit", 4)
	v.SetDefault("blog.search_min_rank", 0.3)
	v.SetDefault("blog.search_language", "english")
	v.SetDefault("blog.feed_size", 5)
	v.SetDefault("blog.timezone", "UTC")

	v.SetDefault("shop.postal_country", "NL")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.service_name", "gin-blog")
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.insecure", true)

	v.SetDefault("rate_limit.rps", 2)
	v.SetDefault("rate_limit.burst", 5)
}

// Load 加载配置：config.yaml（可选）+ 默认值 + BLOG_ 前缀环境变量
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if dir := os.Getenv("BLOG_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	return load(v)
}

// LoadFile 从指定文件加载配置
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid config: unsupported database driver %q", c.Database.Driver)
	}
	switch c.Mail.Backend {
	case "console", "smtp":
	default:
		return fmt.Errorf("invalid config: unsupported mail backend %q", c.Mail.Backend)
	}
	if c.Blog.PageSize <= 0 {
		return fmt.Errorf("invalid config: blog.page_size must be positive, got %d", c.Blog.PageSize)
	}
	if c.Blog.SimilarLimit < 0 {
		return fmt.Errorf("invalid config: blog.similar_limit must not be negative")
	}
	if _, err := time.LoadLocation(c.Blog.Timezone); err != nil {
		return fmt.Errorf("invalid config: blog.timezone: %w", err)
	}
	return nil
}
