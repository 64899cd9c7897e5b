package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("REDBLACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回只包含默认值的配置，供测试与本地启动使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.query_timeout", 5)
	v.SetDefault("reaction.merchant_repeat", "reject")
	v.SetDefault("reaction.post_repeat", "toggle")
	v.SetDefault("image_host.provider", "freeimage")
	v.SetDefault("image_host.thumb_size", 320)
	v.SetDefault("image_host.freeimage.endpoint", "https://freeimage.host/api/1/upload")
	v.SetDefault("image_host.freeimage.timeout", 30)
	v.SetDefault("cron.view_flush", "*/30 * * * * *")
	v.SetDefault("cron.counter_audit", "0 0 * * * *")
	v.SetDefault("log.level", "info")
	v.SetDefault("elastic.indices.post_index", "redblack_posts")
	v.SetDefault("jwt.issuer", "redblack-identity")
}
