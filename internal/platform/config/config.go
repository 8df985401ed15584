package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// FTWeightMode 定义了FT（Flowing Thought）权重的两种计算模式
// 原始规则的表述有歧义，因此把选择权交给配置
type FTWeightMode string

const (
	// FTWeightConstant 表示FT指标始终参与计分，权重恒定，百分比按15上限折算
	FTWeightConstant FTWeightMode = "constant"
	// FTWeightCappedOnly 表示只有FT达到15上限时，该权重才被计入
	FTWeightCappedOnly FTWeightMode = "cappedOnly"
)

// RankingConfig 定义了排名引擎的可调参数
type RankingConfig struct {
	// FTWeightMode 选择FT权重的计算模式，默认为 constant
	FTWeightMode FTWeightMode `mapstructure:"ftWeightMode"`
	// FTWeight 是FT指标的原始权重
	FTWeight float64 `mapstructure:"ftWeight"`
	// RecomputeIntervalMinutes 是后台定时重算的间隔（分钟）
	RecomputeIntervalMinutes int `mapstructure:"recomputeIntervalMinutes"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 可以添加多个路径，Viper会按顺序查找
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 未显式配置时的默认值
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.sqlite.path", "ranking.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("ranking.ftWeightMode", string(FTWeightConstant))
	v.SetDefault("ranking.ftWeight", 2.0)
	v.SetDefault("ranking.recomputeIntervalMinutes", 30)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时依赖默认值，其他错误仍然上抛
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Ranking.FTWeightMode {
	case FTWeightConstant, FTWeightCappedOnly:
	default:
		return nil, fmt.Errorf("无效的 ranking.ftWeightMode 配置: %q", cfg.Ranking.FTWeightMode)
	}

	Cfg = &cfg
	return Cfg, nil
}
