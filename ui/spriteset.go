package ui

import (
	"image/color"

	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	skillUseStep = 6
	hpBarHeight  = 3
)

// BattlerSprite はバトラー1人分の表示です。core.BattlerSprite を実装します。
// SkillUse と Damage は一定フレームで Idle に戻り、Dead は戻りません。
type BattlerSprite struct {
	battler   core.Battler
	cue       core.SpriteCue
	timer     int
	cueFrames int
}

var _ core.BattlerSprite = (*BattlerSprite)(nil)

// SetAnimationState は表示状態を切り替えます。
func (s *BattlerSprite) SetAnimationState(cue core.SpriteCue) {
	if s.cue == core.CueDead && cue != core.CueDead {
		return
	}
	s.cue = cue
	s.timer = s.cueFrames
}

// Cue は現在の表示状態を返します。
func (s *BattlerSprite) Cue() core.SpriteCue {
	return s.cue
}

// Update は表示状態のタイマーを1フレーム進めます。
func (s *BattlerSprite) Update() {
	if s.cue == core.CueIdle || s.cue == core.CueDead {
		return
	}
	s.timer--
	if s.timer <= 0 {
		s.cue = core.CueIdle
		s.timer = 0
	}
}

// offsetX はスキル使用時に前へ踏み出す量です。味方は左、敵は右が前です。
func (s *BattlerSprite) offsetX() float32 {
	if s.cue != core.CueSkillUse {
		return 0
	}
	if s.battler.Type() == core.TeamAlly {
		return -skillUseStep
	}
	return skillUseStep
}

// fillColor は表示状態に応じた塗り色を返します。ダメージ中は点滅します。
func (s *BattlerSprite) fillColor(colors data.ParsedColors) color.Color {
	switch {
	case s.cue == core.CueDead || s.battler.IsDead():
		return colors.Dead
	case s.cue == core.CueDamage && s.timer%4 < 2:
		return colors.Damage
	case s.battler.Type() == core.TeamAlly:
		return colors.Ally
	default:
		return colors.Enemy
	}
}

// Spriteset は戦闘に参加している全バトラーのスプライトです。core.Spriteset を実装します。
type Spriteset struct {
	config  *data.Config
	font    text.Face
	sprites []*BattlerSprite
	byID    map[int]*BattlerSprite
}

var _ core.Spriteset = (*Spriteset)(nil)

// NewSpriteset は battlers の並び順でスプライトを生成します。
func NewSpriteset(config *data.Config, font text.Face, battlers []core.Battler) *Spriteset {
	s := &Spriteset{
		config: config,
		font:   font,
		byID:   make(map[int]*BattlerSprite, len(battlers)),
	}
	for _, b := range battlers {
		sprite := &BattlerSprite{battler: b, cue: core.CueIdle, cueFrames: config.UI.Battlefield.CueFrames}
		if b.IsDead() {
			sprite.cue = core.CueDead
		}
		s.sprites = append(s.sprites, sprite)
		s.byID[b.ID()] = sprite
	}
	return s
}

// FindBattler はバトラーのスプライトを返します。
func (s *Spriteset) FindBattler(b core.Battler) (core.BattlerSprite, bool) {
	if b == nil {
		return nil, false
	}
	sprite, ok := s.byID[b.ID()]
	if !ok {
		return nil, false
	}
	return sprite, true
}

// Update は全スプライトを1フレーム進めます。
func (s *Spriteset) Update() {
	for _, sprite := range s.sprites {
		sprite.Update()
	}
}

// Draw は全スプライトを描画します。
func (s *Spriteset) Draw(screen *ebiten.Image) {
	colors := s.config.UI.Colors
	w := s.config.UI.Battlefield.SpriteWidth
	h := s.config.UI.Battlefield.SpriteHeight

	for _, sprite := range s.sprites {
		bx, by := sprite.battler.BattlePosition()
		x := float32(bx) - w/2 + sprite.offsetX()
		y := float32(by) - h/2

		vector.FillRect(screen, x, y, w, h, sprite.fillColor(colors), false)
		vector.StrokeRect(screen, x, y, w, h, 1, colors.White, false)

		// HPバー
		barY := y + h + 2
		vector.FillRect(screen, x, barY, w, hpBarHeight, colors.Gray, false)
		if maxHP := sprite.battler.MaxHP(); maxHP > 0 {
			ratio := float32(sprite.battler.HP()) / float32(maxHP)
			vector.FillRect(screen, x, barY, w*ratio, hpBarHeight, colors.Damage, false)
		}

		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bx), float64(barY+hpBarHeight+1))
		op.LayoutOptions = text.LayoutOptions{PrimaryAlign: text.AlignCenter}
		op.ColorScale.ScaleWithColor(colors.White)
		text.Draw(screen, sprite.battler.Name(), s.font, op)
	}
}
