package ui

import (
	"io/fs"
	"sort"

	"rpgbattle-ebiten/core"

	resource "github.com/quasilyte/ebitengine-resource"
	"github.com/rs/zerolog"
)

// SEPlayer は効果音を名前で再生します。core.SoundPlayer を実装します。
// アセットに存在しない効果音は登録せず、再生要求は無視します。
type SEPlayer struct {
	loader  *resource.Loader
	ids     map[string]resource.AudioID
	volume  float64
	logger  zerolog.Logger
	missing map[string]bool
}

var _ core.SoundPlayer = (*SEPlayer)(nil)

// NewSEPlayer は sounds（名前 → アセット内のパス）を登録した SEPlayer を返します。
func NewSEPlayer(loader *resource.Loader, assets fs.FS, sounds map[string]string, volume float64, logger zerolog.Logger) *SEPlayer {
	p := &SEPlayer{
		loader:  loader,
		ids:     make(map[string]resource.AudioID, len(sounds)),
		volume:  volume,
		logger:  logger.With().Str("component", "se").Logger(),
		missing: make(map[string]bool),
	}

	names := make([]string, 0, len(sounds))
	for name := range sounds {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := make(map[resource.AudioID]resource.AudioInfo, len(names))
	for _, name := range names {
		path := sounds[name]
		if _, err := fs.Stat(assets, path); err != nil {
			p.logger.Warn().Str("se", name).Str("path", path).Msg("効果音ファイルが見つかりません")
			continue
		}
		id := resource.AudioID(len(registry) + 1)
		registry[id] = resource.AudioInfo{Path: path}
		p.ids[name] = id
	}
	loader.AudioRegistry.Assign(registry)
	return p
}

// PlaySE は効果音を先頭から再生します。
func (p *SEPlayer) PlaySE(name string) {
	if p == nil {
		return
	}
	id, ok := p.ids[name]
	if !ok {
		if !p.missing[name] {
			p.missing[name] = true
			p.logger.Debug().Str("se", name).Msg("未登録の効果音です")
		}
		return
	}
	player := p.loader.LoadAudio(id).Player
	if err := player.Rewind(); err != nil {
		p.logger.Warn().Err(err).Str("se", name).Msg("効果音の巻き戻しに失敗しました")
		return
	}
	player.SetVolume(p.volume)
	player.Play()
}
