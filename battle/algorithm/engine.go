// Package algorithm は攻撃やスキルの効果計算を行います。
// 命中判定、ダメージ、付与ステート、再生するアニメーションを1ターゲット単位で求めます。
package algorithm

import (
	"math/rand"

	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
)

// Engine は core.EffectEngine の実装です。
type Engine struct {
	rand     *rand.Rand
	db       *data.Database
	config   data.BattleConfig
	logger   data.BattleLogger
	formulas *Formulas
}

var _ core.EffectEngine = (*Engine)(nil)

// NewEngine は新しい Engine を生成します。
func NewEngine(r *rand.Rand, db *data.Database, config data.BattleConfig, logger data.BattleLogger) *Engine {
	return &Engine{
		rand:     r,
		db:       db,
		config:   config,
		logger:   logger,
		formulas: NewFormulas(),
	}
}

// Normal は通常攻撃の計算を生成します。
func (e *Engine) Normal(source, target core.Battler) core.Algorithm {
	return &Normal{engine: e, source: source, target: target}
}

// Skill はスキルの計算を生成します。
func (e *Engine) Skill(source, target core.Battler, skill *core.Skill) core.Algorithm {
	return &Skill{engine: e, source: source, target: target, skill: skill}
}

// hitCheck は命中率 rate(%) で命中判定を行います。
func (e *Engine) hitCheck(source, target core.Battler, rate int) bool {
	roll := e.rand.Intn(100)
	e.logger.LogHitCheck(source.Name(), target.Name(), rate, roll)
	return roll < rate
}

// vary はダメージに ±percent% の分散を加えます。
func (e *Engine) vary(base, percent int) int {
	spread := base * percent / 100
	if spread <= 0 {
		return base
	}
	return base + e.rand.Intn(2*spread+1) - spread
}

func (e *Engine) animation(id int) *core.AnimationAsset {
	asset, ok := e.db.Animation(id)
	if !ok {
		return nil
	}
	return asset
}
