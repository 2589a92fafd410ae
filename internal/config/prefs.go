package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pdfscope/internal/atomicfile"
)

// StorageNamespace 偏好存储的固定命名空间
const StorageNamespace = "pdf-reader-storage"

// PrefsVersion 偏好文件格式版本
const PrefsVersion = 1

// Prefs 跨会话保留的界面偏好，目前只有缩放比例
type Prefs struct {
	Version int     `toml:"version"`
	Scale   float64 `toml:"scale,omitempty"`
}

// LoadPrefs 读取偏好文件，文件不存在时返回默认值（Scale 为 0 表示未设置）
func LoadPrefs(path string) (*Prefs, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs path is required")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Prefs{Version: PrefsVersion}, nil
	}

	var prefs Prefs
	if _, err := toml.DecodeFile(path, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse prefs %s: %w", path, err)
	}
	if prefs.Version == 0 {
		prefs.Version = PrefsVersion
	}
	return &prefs, nil
}

// SavePrefs 原子写入偏好文件
func SavePrefs(path string, prefs *Prefs) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("prefs path is required")
	}
	if prefs == nil {
		prefs = &Prefs{}
	}

	normalized := *prefs
	if normalized.Version == 0 {
		normalized.Version = PrefsVersion
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write prefs %s: %w", path, err)
	}
	return nil
}
