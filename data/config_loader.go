package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
)

//go:embed assets
var embeddedAssets embed.FS

// アセット内の各ファイルのパスです。
const (
	SettingsPath = "game_settings.json"
	DatabasePath = "database.yaml"
	LocalesDir   = "locales"
)

// EmbeddedAssets はバイナリに埋め込まれた既定のアセットを返します。
func EmbeddedAssets() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// 埋め込みディレクトリ名は固定のため、ここには到達しません。
		panic(err)
	}
	return sub
}

// AssetFS は設定に応じたアセットのファイルシステムを返します。
// AssetDir が指定されていればディスク上のディレクトリを、そうでなければ埋め込みアセットを使います。
func AssetFS(cfg *Config) fs.FS {
	if cfg.Game.AssetDir != "" {
		return os.DirFS(cfg.Game.AssetDir)
	}
	return EmbeddedAssets()
}

// LoadConfig は設定ファイルを読み込み、環境変数で上書きした Config を返します。
// アセットディレクトリ自体も環境変数で決まるため、環境変数は2回パースされます。
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg.Game); err != nil {
		return Config{}, fmt.Errorf("環境変数のパースに失敗しました: %w", err)
	}

	if err := LoadSettings(AssetFS(&cfg), &cfg); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数のパースに失敗しました: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadSettings は game_settings.json を cfg にデシリアライズします。
func LoadSettings(fsys fs.FS, cfg *Config) error {
	jsonFile, err := fs.ReadFile(fsys, SettingsPath)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", SettingsPath, err)
	}
	if err := json.Unmarshal(jsonFile, cfg); err != nil {
		return fmt.Errorf("%s のアンマーシャルに失敗しました: %w", SettingsPath, err)
	}
	return nil
}

// Validate は設定値の整合性を検証します。
func (c *Config) Validate() error {
	if c.Battle.WaitFrames < 1 {
		return fmt.Errorf("WaitFrames は1以上である必要があります: %d", c.Battle.WaitFrames)
	}
	if c.Battle.HitRate < 0 || c.Battle.HitRate > 100 {
		return fmt.Errorf("HitRate は0から100の範囲である必要があります: %d", c.Battle.HitRate)
	}
	if c.Battle.CriticalMultiplier < 1 {
		return fmt.Errorf("CriticalMultiplier は1以上である必要があります: %d", c.Battle.CriticalMultiplier)
	}
	if c.UI.MessageWindow.Lines < 1 {
		return fmt.Errorf("MessageWindow.Lines は1以上である必要があります: %d", c.UI.MessageWindow.Lines)
	}
	return nil
}
