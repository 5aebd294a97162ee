package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database 数据库配置
type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Path     string `mapstructure:"path"` // sqlite文件路径
}

// Redis Redis配置
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// AI 推理服务配置
type AI struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type Config struct {
	Server struct {
		Port         string   `mapstructure:"port"`
		Mode         string   `mapstructure:"mode"`
		AllowOrigins []string `mapstructure:"allow_origins"`
	} `mapstructure:"server"`

	Log struct {
		Mode string `mapstructure:"mode"`
	} `mapstructure:"log"`

	// Storage 状态存储: gorm / redis / memory
	Storage struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"storage"`

	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`

	JWT struct {
		Secret    string `mapstructure:"secret"`
		ExpiresIn int    `mapstructure:"expires_in"` // 过期时间（小时）
	} `mapstructure:"jwt"`

	AI AI `mapstructure:"ai"`

	Social struct {
		ConnectDelay time.Duration `mapstructure:"connect_delay"`
	} `mapstructure:"social"`

	Session struct {
		IdleTTL       time.Duration `mapstructure:"idle_ttl"` // <=0不淘汰
		SweepInterval time.Duration `mapstructure:"sweep_interval"`
	} `mapstructure:"session"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("log.mode", "development")
	v.SetDefault("storage.driver", "gorm")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "reply_assist.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.prefix", "reply_assist:")
	v.SetDefault("jwt.expires_in", 24*30)
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.model", "google/gemini-2.0-flash-001")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("social.connect_delay", 2*time.Second)
	v.SetDefault("session.idle_ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", 5*time.Minute)
}

// Load 加载配置
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
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

	// 环境变量覆盖，例如 REPLYASSIST_AI_API_KEY
	v.SetEnvPrefix("replyassist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("ai.api_key", "REPLYASSIST_AI_API_KEY", "AI_API_KEY")
	_ = v.BindEnv("jwt.secret", "REPLYASSIST_JWT_SECRET", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
