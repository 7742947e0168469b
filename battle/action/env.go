// Package action は1件のバトルアクションを1ティックずつ進める状態機械を提供します。
//
// アクションは PreAction → Action → PostAction → (ResultAction) → Finished の順に進み、
// 戦闘アニメーションの再生中は外側の状態機械が停止します。
package action

import (
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
)

// Env はアクションが利用する外部の協調オブジェクト一式です。
// 1回の戦闘で全アクションが同じ Env を共有します。
type Env struct {
	Messages   core.MessageSink
	Sounds     core.SoundPlayer
	Spriteset  core.Spriteset
	Engine     core.EffectEngine
	Animations core.AnimationFactory

	Locale       *data.Locale
	SystemSounds core.SystemSounds

	// WaitFrames はフェーズ間の待機ティック数です。0以下なら core.DefaultWaitFrames を使います。
	WaitFrames int
	// PartyAnimationX, PartyAnimationY は全体スキルのアニメーションを再生する画面座標です。
	PartyAnimationX int
	PartyAnimationY int

	Logger data.BattleLogger
	// Observer は省略可能です。設定されていれば PostAction ごとに効果の結果を受け取ります。
	Observer core.EffectObserver
}

// NewEnv は設定値から Env の固定部分を埋めて返します。
func NewEnv(cfg data.BattleConfig, db *data.Database, locale *data.Locale) *Env {
	return &Env{
		Locale:          locale,
		SystemSounds:    db.System.Sounds,
		WaitFrames:      cfg.WaitFrames,
		PartyAnimationX: cfg.PartyAnimationX,
		PartyAnimationY: cfg.PartyAnimationY,
		Logger:          data.NopBattleLogger(),
	}
}

func (e *Env) waitFrames() int {
	if e.WaitFrames <= 0 {
		return core.DefaultWaitFrames
	}
	return e.WaitFrames
}

func (e *Env) logger() data.BattleLogger {
	if e.Logger == nil {
		return data.NopBattleLogger()
	}
	return e.Logger
}

// setCue はバトラーのスプライトが見つかった場合だけ演出キューを送ります。
func (e *Env) setCue(b core.Battler, cue core.SpriteCue) {
	if e.Spriteset == nil {
		return
	}
	if sprite, ok := e.Spriteset.FindBattler(b); ok {
		sprite.SetAnimationState(cue)
	}
}

func (e *Env) playSE(name string) {
	if e.Sounds == nil || name == "" {
		return
	}
	e.Sounds.PlaySE(name)
}
