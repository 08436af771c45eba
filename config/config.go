package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/moyu-x/dupsweep/internal"
)

type Config struct {
	Scanner struct {
		Roots            []string `mapstructure:"roots"`
		Exclude          []string `mapstructure:"exclude"`
		BundleExtensions []string `mapstructure:"bundle_extensions"`
	} `mapstructure:"scanner"`
	Dedup struct {
		MinFileSize int64 `mapstructure:"-"`
		Workers     int   `mapstructure:"workers"`
	} `mapstructure:"dedup"`
	Hasher struct {
		PartialSize int    `mapstructure:"-"`
		ChunkSize   int    `mapstructure:"-"`
		Algorithm   string `mapstructure:"algorithm"`
	} `mapstructure:"hasher"`
	Large struct {
		Threshold int64 `mapstructure:"-"`
	} `mapstructure:"large"`
	Report struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"report"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
}

var cfg Config

// Load 读取配置文件和 DUPSWEEP_ 前缀的环境变量。
// cfgFile 为空时依次在 $HOME/.dupsweep、当前目录和 /etc/dupsweep 中查找 config.yaml，找不到时使用默认值。
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.dupsweep")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dupsweep")
	}

	v.SetEnvPrefix("DUPSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	sizes := []struct {
		key  string
		dest func(int64)
	}{
		{"dedup.min_file_size", func(n int64) { c.Dedup.MinFileSize = n }},
		{"hasher.partial_size", func(n int64) { c.Hasher.PartialSize = int(n) }},
		{"hasher.chunk_size", func(n int64) { c.Hasher.ChunkSize = int(n) }},
		{"large.threshold", func(n int64) { c.Large.Threshold = n }},
	}
	for _, s := range sizes {
		n, err := ParseSize(v.GetString(s.key))
		if err != nil {
			return nil, fmt.Errorf("配置项 %s 无效: %w", s.key, err)
		}
		s.dest(n)
	}

	cfg = c
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scanner.roots", []string{})
	v.SetDefault("scanner.exclude", internal.DefaultExcludes)
	v.SetDefault("scanner.bundle_extensions", internal.DefaultBundleExtensions)
	v.SetDefault("dedup.min_file_size", internal.DefaultMinFileSize)
	v.SetDefault("dedup.workers", 0)
	v.SetDefault("hasher.partial_size", internal.DefaultPartialHashSize)
	v.SetDefault("hasher.chunk_size", internal.DefaultChunkSize)
	v.SetDefault("hasher.algorithm", internal.DefaultHashAlgorithm)
	v.SetDefault("large.threshold", internal.DefaultLargeFileThreshold)
	v.SetDefault("report.path", internal.DefaultReportPath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// ParseSize 解析 "1024"、"4KiB"、"100 MB" 这样的大小
func ParseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("大小超出范围: %s", s)
	}
	return int64(n), nil
}

// Get 返回最近一次 Load 的结果
func Get() *Config {
	return &cfg
}
