package main

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/event"
	"rpgbattle-ebiten/history"
	"rpgbattle-ebiten/scene"
	"rpgbattle-ebiten/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/noppikinatta/bamenn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := data.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	logger := data.NewLogger(cfg.Game.LogLevel, os.Stderr)

	assets := data.AssetFS(&cfg)
	db, err := data.LoadDatabase(assets)
	if err != nil {
		logger.Fatal().Err(err).Msg("データベースの読み込みに失敗しました")
	}
	catalog, err := data.LoadLocales(assets)
	if err != nil {
		logger.Fatal().Err(err).Msg("ロケールの読み込みに失敗しました")
	}

	audioContext := audio.NewContext(cfg.UI.Audio.SampleRate)
	res, err := ui.NewSharedResources(cfg, assets, db, catalog, audioContext, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("共有リソースの初期化に失敗しました")
	}

	if cfg.Game.HistoryDB != "" {
		store, err := history.Open(cfg.Game.HistoryDB, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("戦闘履歴を開けませんでした")
		}
		defer store.Close()
		res.History = store
	}

	manager := scene.NewSceneManager(res)
	game := &Game{
		Sequence: manager.Sequence,
		manager:  manager,
		reloader: &data.Reloader{Assets: assets, DB: res.DB, Locale: res.Locale, LocaleName: cfg.Game.Locale},
		logger:   logger,
	}

	if cfg.Game.Watch && cfg.Game.AssetDir != "" {
		watcher, err := data.NewWatcher(watchDirs(cfg.Game.AssetDir, assets)...)
		if err != nil {
			logger.Warn().Err(err).Msg("アセットの監視を開始できませんでした")
		} else {
			defer watcher.Close()
			game.watcher = watcher
			logger.Info().Str("dir", cfg.Game.AssetDir).Msg("アセットの変更を監視します")
		}
	}

	screen := cfg.UI.Screen
	ebiten.SetWindowSize(screen.Width*screen.Scale, screen.Height*screen.Scale)
	ebiten.SetWindowTitle("RPG Battle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("ゲームが異常終了しました")
	}
}

// Game は bamenn のシーケンスに、アセットのホットリロードを加えたものです。
type Game struct {
	*bamenn.Sequence
	manager  *scene.SceneManager
	reloader *data.Reloader
	watcher  *data.Watcher
	logger   zerolog.Logger
}

// Update は変更されたアセットを読み直してから、現在のシーンを進めます。
func (g *Game) Update() error {
	if g.watcher != nil {
		g.drainWatcher()
	}
	return g.Sequence.Update()
}

func (g *Game) drainWatcher() {
	for {
		select {
		case changed := <-g.watcher.Events:
			if err := g.reloader.Reload(changed); err != nil {
				g.logger.Warn().Err(err).Str("path", changed).Msg("ホットリロードに失敗しました")
				continue
			}
			g.logger.Info().Str("path", changed).Msg("アセットを再読み込みしました")
			g.manager.Notify(event.DatabaseReloadedGameEvent{Path: changed})
		case err := <-g.watcher.Errors:
			g.logger.Warn().Err(err).Msg("アセットの監視でエラーが発生しました")
		default:
			return
		}
	}
}

// watchDirs はアセットディレクトリと各ロケールのディレクトリを返します。
func watchDirs(assetDir string, assets fs.FS) []string {
	dirs := []string{assetDir}
	locales, _ := fs.Glob(assets, path.Join(data.LocalesDir, "*"))
	for _, l := range locales {
		dirs = append(dirs, filepath.Join(assetDir, filepath.FromSlash(l)))
	}
	return dirs
}
