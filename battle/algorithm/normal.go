package algorithm

import (
	"rpgbattle-ebiten/core"
)

// Normal は通常攻撃の計算です。
// ダメージは 攻撃力/2 - 防御力/4 に分散とクリティカルを加えたものです。
type Normal struct {
	result
	engine *Engine
	source core.Battler
	target core.Battler
}

var _ core.Algorithm = (*Normal)(nil)

// Execute は計算を行います。戦闘不能の対象には何も起こりません（回避扱い）。
func (n *Normal) Execute() {
	n.begin()
	if n.target.IsDead() {
		return
	}
	n.animation = n.engine.animation(n.source.AttackAnimation())

	cfg := n.engine.config
	if !n.engine.hitCheck(n.source, n.target, cfg.HitRate) {
		return
	}

	base := n.source.Attack()/2 - n.target.Defense()/4
	if base < 0 {
		base = 0
	}
	damage := n.engine.vary(base, cfg.Variance)
	critical := n.engine.rand.Intn(100) < cfg.CriticalChance
	if critical {
		damage *= cfg.CriticalMultiplier
	}
	n.engine.logger.LogDamage(n.source.Name(), n.target.Name(), base, damage, critical)
	n.inflict(n.target, damage)
}
