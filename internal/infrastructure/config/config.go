package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Engine      EngineConfig    `mapstructure:"engine"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Queue       QueueConfig     `mapstructure:"queue"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CatalogConfig 替代目錄來源設定
// Source 可選 memory / redis / remote
type CatalogConfig struct {
	Source    string        `mapstructure:"source"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// EngineConfig 引擎策略設定
// 這些數值是產品策略（技能緩衝、難度權重），必須可覆寫而非寫死
type EngineConfig struct {
	SkillBuffer          int     `mapstructure:"skill_buffer"`           // 技法可見度緩衝（±2）
	AssistThreshold      int     `mapstructure:"assist_threshold"`       // 低於等於此技能等級才改寫指令
	SafetySkillThreshold int     `mapstructure:"safety_skill_threshold"` // 低於此技能等級才加安全提示
	MaxSubstitutions     int     `mapstructure:"max_substitutions"`      // 每個食材最多回傳幾個替代
	TechniqueWeight      float64 `mapstructure:"technique_weight"`
	PrepWeight           float64 `mapstructure:"prep_weight"`
	EquipmentWeight      float64 `mapstructure:"equipment_weight"`
	TimeOverrunRatio     float64 `mapstructure:"time_overrun_ratio"` // 超出偏好時間多少比例才提醒
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// QueueConfig 目錄查詢工作池設定
type QueueConfig struct {
	Workers int `mapstructure:"workers"`
	MaxSize int `mapstructure:"max_size"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DefaultEngine 引擎策略預設值
// 測試與 setDefaults 共用，確保兩邊不會漂移
func DefaultEngine() EngineConfig {
	return EngineConfig{
		SkillBuffer:          2,
		AssistThreshold:      5,
		SafetySkillThreshold: 4,
		MaxSubstitutions:     3,
		TechniqueWeight:      0.4,
		PrepWeight:           0.3,
		EquipmentWeight:      0.3,
		TimeOverrunRatio:     1.25,
	}
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("catalog.source", "CATALOG_SOURCE")
	viper.BindEnv("catalog.redis_addr", "CATALOG_REDIS_ADDR")
	viper.BindEnv("catalog.remote_url", "CATALOG_REMOTE_URL")
	viper.BindEnv("engine.skill_buffer", "ENGINE_SKILL_BUFFER")
	viper.BindEnv("engine.max_substitutions", "ENGINE_MAX_SUBSTITUTIONS")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-adapter")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 目錄來源設定
	viper.SetDefault("catalog.source", "memory")
	viper.SetDefault("catalog.redis_addr", "localhost:6379")
	viper.SetDefault("catalog.remote_url", "")
	viper.SetDefault("catalog.timeout", "10s")

	// 引擎策略設定
	engine := DefaultEngine()
	viper.SetDefault("engine.skill_buffer", engine.SkillBuffer)
	viper.SetDefault("engine.assist_threshold", engine.AssistThreshold)
	viper.SetDefault("engine.safety_skill_threshold", engine.SafetySkillThreshold)
	viper.SetDefault("engine.max_substitutions", engine.MaxSubstitutions)
	viper.SetDefault("engine.technique_weight", engine.TechniqueWeight)
	viper.SetDefault("engine.prep_weight", engine.PrepWeight)
	viper.SetDefault("engine.equipment_weight", engine.EquipmentWeight)
	viper.SetDefault("engine.time_overrun_ratio", engine.TimeOverrunRatio)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 工作池設定
	viper.SetDefault("queue.workers", 5)
	viper.SetDefault("queue.max_size", 100)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證目錄來源設定
	switch config.Catalog.Source {
	case "memory":
	case "redis":
		if config.Catalog.RedisAddr == "" {
			return fmt.Errorf("catalog redis addr is required")
		}
	case "remote":
		if config.Catalog.RemoteURL == "" {
			return fmt.Errorf("catalog remote url is required")
		}
	default:
		return fmt.Errorf("unknown catalog source: %s", config.Catalog.Source)
	}

	// 驗證引擎策略設定
	if config.Engine.SkillBuffer < 0 {
		return fmt.Errorf("invalid engine skill buffer")
	}
	if config.Engine.MaxSubstitutions <= 0 {
		return fmt.Errorf("invalid engine max substitutions")
	}
	weightSum := config.Engine.TechniqueWeight + config.Engine.PrepWeight + config.Engine.EquipmentWeight
	if weightSum < 0.99 || weightSum > 1.01 {
		return fmt.Errorf("engine difficulty weights must sum to 1, got %.2f", weightSum)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證工作池設定
	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
