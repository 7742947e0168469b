package algorithm

import (
	"rpgbattle-ebiten/core"
)

// Skill はスキルの計算です。
// ダメージはスキルの計算式（未指定なら既定の計算式）で求めます。
type Skill struct {
	result
	engine *Engine
	source core.Battler
	target core.Battler
	skill  *core.Skill
}

var _ core.Algorithm = (*Skill)(nil)

// Execute は計算を行います。戦闘不能の対象には何も起こりません（回避扱い）。
func (s *Skill) Execute() {
	s.begin()
	if s.target.IsDead() {
		return
	}
	s.animation = s.engine.animation(s.skill.AnimationID)

	if !s.engine.hitCheck(s.source, s.target, percentOr(s.skill.HitRate, 100)) {
		return
	}

	base := s.baseDamage()
	damage := s.engine.vary(base, s.skill.Variance)
	if damage < 0 {
		damage = 0
	}
	s.engine.logger.LogDamage(s.source.Name(), s.target.Name(), base, damage, false)

	for _, id := range s.skill.Conditions {
		if s.engine.rand.Intn(100) < percentOr(s.skill.ConditionRate, 100) {
			s.conditions = append(s.conditions, id)
		}
	}
	s.inflict(s.target, damage)
}

// baseDamage は計算式を評価します。失敗した場合は既定の計算式、それも失敗した場合は威力をそのまま使います。
func (s *Skill) baseDamage() int {
	vars := FormulaVariables(s.source, s.target, s.skill.Power)
	formulas := s.engine.formulas

	if s.skill.Formula != "" {
		damage, err := formulas.Eval(s.skill.Formula, vars)
		if err == nil {
			return damage
		}
		s.engine.logger.LogFormulaError(s.skill.Name, err)
	}
	damage, err := formulas.Eval(s.engine.config.DefaultFormula, vars)
	if err != nil {
		s.engine.logger.LogFormulaError(s.skill.Name, err)
		return s.skill.Power
	}
	return damage
}

func percentOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
