package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Mail       MailConfig       `mapstructure:"mail"`
	Log        LogConfig        `mapstructure:"log"`
	Invitation InvitationConfig `mapstructure:"invitation"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Feature    FeatureConfig    `mapstructure:"feature"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	BaseURL      string        `mapstructure:"base_url"` // 前端地址，用于拼接邀请链接
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig 数据源配置
// driver = postgres 为生产数据源；driver = sqlite 为内存/本地文件数据源（演示与测试）
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
	LogQueries      bool   `mapstructure:"log_queries"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// IsSQLite 是否使用 SQLite 数据源
func (c *DatabaseConfig) IsSQLite() bool {
	return strings.EqualFold(c.Driver, "sqlite")
}

// RedisConfig Redis 配置（可选，连接失败时降级）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	Issuer          string        `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Cookie          CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Secure bool   `mapstructure:"secure"`
	Domain string `mapstructure:"domain"`
}

// MailConfig 邮件发送配置
// provider = ses 走 AWS SES v2；provider = log 仅写日志（开发环境）
type MailConfig struct {
	Provider        string `mapstructure:"provider"`
	From            string `mapstructure:"from"`
	AWSRegion       string `mapstructure:"aws_region"`
	AWSAccessKey    string `mapstructure:"aws_access_key"`
	AWSSecretKey    string `mapstructure:"aws_secret_key"`
	AWSSessionToken string `mapstructure:"aws_session_token"`
	MaxConcurrency  int    `mapstructure:"max_concurrency"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InvitationConfig 邀请令牌配置
type InvitationConfig struct {
	TTL              time.Duration `mapstructure:"ttl"`
	TokenBytes       int           `mapstructure:"token_bytes"`
	MaxTokenAttempts int           `mapstructure:"max_token_attempts"`
	// RetainDeclined 为 true 时拒绝后保留记录（状态置为 declined），否则直接删除
	RetainDeclined bool `mapstructure:"retain_declined"`
}

// MatchingConfig 匹配评分配置（权重与推荐档位阈值）
type MatchingConfig struct {
	TeamWeights        map[string]float64 `mapstructure:"team_weights"`
	OpportunityWeights map[string]float64 `mapstructure:"opportunity_weights"`
	Thresholds         ThresholdConfig    `mapstructure:"thresholds"`
	DefaultLimit       int                `mapstructure:"default_limit"`
	MaxLimit           int                `mapstructure:"max_limit"`
}

// ThresholdConfig 推荐档位阈值
type ThresholdConfig struct {
	Excellent int `mapstructure:"excellent"`
	Good      int `mapstructure:"good"`
	Fair      int `mapstructure:"fair"`
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	SeedDemoData bool `mapstructure:"seed_demo_data"`
	RateLimit    bool `mapstructure:"rate_limit"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > .env > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在属于正常情况
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LIFTOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "liftout")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.sqlite_path", "file::memory:?cache=shared")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.log_queries", false)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.issuer", "liftout")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.cookie.secure", false)

	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "Liftout <no-reply@liftout.com>")
	v.SetDefault("mail.aws_region", "us-east-1")
	v.SetDefault("mail.max_concurrency", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("invitation.ttl", "168h")
	v.SetDefault("invitation.token_bytes", 32)
	v.SetDefault("invitation.max_token_attempts", 3)
	v.SetDefault("invitation.retain_declined", false)

	v.SetDefault("matching.team_weights", map[string]float64{
		"skills": 30, "industry": 20, "compensation": 15, "size": 10,
		"location": 10, "experience": 10, "availability": 5,
	})
	v.SetDefault("matching.opportunity_weights", map[string]float64{
		"skills": 30, "industry": 20, "compensation": 15, "size": 10,
		"location": 10, "urgency": 5, "company_quality": 10,
	})
	v.SetDefault("matching.thresholds.excellent", 85)
	v.SetDefault("matching.thresholds.good", 70)
	v.SetDefault("matching.thresholds.fair", 55)
	v.SetDefault("matching.default_limit", 20)
	v.SetDefault("matching.max_limit", 100)

	v.SetDefault("feature.seed_demo_data", false)
	v.SetDefault("feature.rate_limit", true)
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret is required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535")
	}
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid config: db.driver %q is not supported", c.Database.Driver)
	}
	if c.Invitation.TTL <= 0 {
		return fmt.Errorf("invalid config: invitation.ttl must be positive")
	}
	if c.Invitation.TokenBytes < 16 {
		return fmt.Errorf("invalid config: invitation.token_bytes must be at least 16")
	}
	if err := validateWeights("matching.team_weights", c.Matching.TeamWeights); err != nil {
		return err
	}
	if err := validateWeights("matching.opportunity_weights", c.Matching.OpportunityWeights); err != nil {
		return err
	}
	t := c.Matching.Thresholds
	if !(t.Excellent >= t.Good && t.Good >= t.Fair && t.Fair >= 0 && t.Excellent <= 100) {
		return fmt.Errorf("invalid config: matching.thresholds must satisfy 100 >= excellent >= good >= fair >= 0")
	}
	return nil
}

func validateWeights(key string, weights map[string]float64) error {
	var sum float64
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("invalid config: %s.%s must not be negative", key, name)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("invalid config: %s must have a positive sum", key)
	}
	return nil
}
