package action

import (
	"rpgbattle-ebiten/core"
)

// AttackSingleNormal は1人への通常攻撃です。
// 狙った相手が Action フェーズまでに倒れていれば、同じパーティの生存メンバーに狙いを変えます。
type AttackSingleNormal struct {
	single
}

// NewAttackSingleNormal は通常攻撃のアクションを生成します。
func NewAttackSingleNormal(env *Env, source, target core.Battler) *AttackSingleNormal {
	a := &AttackSingleNormal{single: newSingle(env, source, target)}
	a.hooks = a
	return a
}

// ResolveTarget は倒れたターゲットの代わりにパーティの生存メンバーからランダムに選びます。
// 生存メンバーがいなければ元のターゲットのままです。
func (a *AttackSingleNormal) ResolveTarget(current core.Battler) core.Battler {
	if !current.IsDead() {
		return current
	}
	party := current.Party()
	if party == nil {
		return current
	}
	if next := party.RandomAliveBattler(); next != nil {
		return next
	}
	return current
}

func (a *AttackSingleNormal) applyEffect() {
	a.resolveTarget()
	a.execute(a.env.Engine.Normal(a.source, a.current), a.current)
	a.playAnimation(a.current.BattlePosition())
}

func (a *AttackSingleNormal) reportEffect() {
	a.reportDamage(a.current)
}

// AttackPartyNormal はパーティ全員への通常攻撃です。アニメーションは各ターゲットの位置で再生します。
type AttackPartyNormal struct {
	party
}

// NewAttackPartyNormal は全体通常攻撃のアクションを生成します。
func NewAttackPartyNormal(env *Env, source core.Battler, target core.Party) *AttackPartyNormal {
	a := &AttackPartyNormal{party: newParty(env, source, target)}
	a.hooks = a
	return a
}

func (a *AttackPartyNormal) applyEffect() {
	target := a.target()
	a.execute(a.env.Engine.Normal(a.source, target), target)
	a.playAnimation(target.BattlePosition())
}

func (a *AttackPartyNormal) reportEffect() {
	a.reportDamage(a.target())
}

// AttackSingleSkill は1人へのスキルです。SPを消費し、アニメーションはターゲットの位置で再生します。
type AttackSingleSkill struct {
	single
	definition *core.Skill
}

// NewAttackSingleSkill はスキルのアクションを生成します。
func NewAttackSingleSkill(env *Env, source, target core.Battler, skill *core.Skill) *AttackSingleSkill {
	a := &AttackSingleSkill{single: newSingle(env, source, target), definition: skill}
	a.hooks = a
	return a
}

func (a *AttackSingleSkill) skill() *core.Skill {
	return a.definition
}

func (a *AttackSingleSkill) applyEffect() {
	a.execute(a.env.Engine.Skill(a.source, a.current, a.definition), a.current)
	consumeSP(a.source, a.definition)
	a.playAnimation(a.current.BattlePosition())
}

func (a *AttackSingleSkill) reportEffect() {
	a.reportDamage(a.current)
}

// AttackPartySkill はパーティ全員へのスキルです。
// SPの消費と画面中央でのアニメーション再生は最初のターゲットのときだけ行います。
type AttackPartySkill struct {
	party
	definition *core.Skill
}

// NewAttackPartySkill は全体スキルのアクションを生成します。
func NewAttackPartySkill(env *Env, source core.Battler, target core.Party, skill *core.Skill) *AttackPartySkill {
	a := &AttackPartySkill{party: newParty(env, source, target), definition: skill}
	a.hooks = a
	return a
}

func (a *AttackPartySkill) skill() *core.Skill {
	return a.definition
}

func (a *AttackPartySkill) applyEffect() {
	target := a.target()
	a.execute(a.env.Engine.Skill(a.source, target, a.definition), target)
	if a.first() {
		consumeSP(a.source, a.definition)
		a.playAnimation(a.env.PartyAnimationX, a.env.PartyAnimationY)
	}
}

func (a *AttackPartySkill) reportEffect() {
	a.reportDamage(a.target())
}

func consumeSP(source core.Battler, skill *core.Skill) {
	source.SetSP(source.SP() - skill.SPCost)
}
