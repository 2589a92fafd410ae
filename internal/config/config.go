package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// 环境变量
const (
	EnvDebounce = "PDFSCOPE_DEBOUNCE"
	EnvLogFile  = "PDFSCOPE_LOG"
	EnvState    = "PDFSCOPE_STATE"
)

// DefaultDebounce 输入停止后多久开始扫描
const DefaultDebounce = 500 * time.Millisecond

// Config 描述 pdfscope 运行所需的基础配置
type Config struct {
	SearchDebounce time.Duration // 搜索防抖延迟
	LogFile        string        // 日志文件，留空表示丢弃日志
	StatePath      string        // 偏好文件路径
}

// Load 从环境变量加载配置，并填充合理默认值
func Load() (*Config, error) {
	cfg := &Config{
		SearchDebounce: DefaultDebounce,
		LogFile:        strings.TrimSpace(os.Getenv(EnvLogFile)),
		StatePath:      strings.TrimSpace(os.Getenv(EnvState)),
	}

	if v := strings.TrimSpace(os.Getenv(EnvDebounce)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvDebounce, v, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid %s %q: must not be negative", EnvDebounce, v)
		}
		cfg.SearchDebounce = d
	}

	if cfg.StatePath == "" {
		cfg.StatePath = DefaultStatePath()
	}

	return cfg, nil
}

// DefaultStatePath 返回偏好文件的默认位置：<用户配置目录>/pdfscope/pdf-reader-storage.toml
func DefaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pdfscope", StorageNamespace+".toml")
	}
	return filepath.Join(".", StorageNamespace+".toml")
}
