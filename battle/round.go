package battle

import (
	"math/rand"

	"rpgbattle-ebiten/battle/action"
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/ecs/entity"
)

// TargetingStrategy は単体行動の狙いを生存メンバーから1人選びます。
type TargetingStrategy func(candidates []core.Battler, r *rand.Rand) core.Battler

// RandomTarget は一様ランダムに選びます。
func RandomTarget(candidates []core.Battler, r *rand.Rand) core.Battler {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[r.Intn(len(candidates))]
}

// WeakestTarget は残りHPが最も少ないメンバーを選びます。同じHPなら並び順が先のメンバーです。
func WeakestTarget(candidates []core.Battler, _ *rand.Rand) core.Battler {
	var weakest core.Battler
	for _, c := range candidates {
		if weakest == nil || c.HP() < weakest.HP() {
			weakest = c
		}
	}
	return weakest
}

// RoundBuilder は1ラウンド分のアクションを組み立てます。
// 生存しているバトラー全員が味方、敵の並び順に1回ずつ行動します。
type RoundBuilder struct {
	Env       *action.Env
	Roster    *entity.Roster
	DB        *data.Database
	Rand      *rand.Rand
	Targeting map[core.TeamType]TargetingStrategy
}

// Build はラウンドのアクションを返します。相手パーティが全滅していれば空です。
func (rb *RoundBuilder) Build() []action.Action {
	var actions []action.Action
	for _, b := range rb.Roster.All() {
		if b.IsDead() {
			continue
		}
		if a := rb.choose(b); a != nil {
			actions = append(actions, a)
		}
	}
	return actions
}

// choose は使えるスキルがあれば先頭のスキルを、なければ通常攻撃を選びます。
func (rb *RoundBuilder) choose(b *entity.Battler) action.Action {
	opponents := rb.Roster.Party(b.Type().Opponent())
	alive := opponents.AliveBattlers()
	if len(alive) == 0 {
		return nil
	}

	if skill := rb.affordableSkill(b); skill != nil {
		if skill.TargetsParty {
			return action.NewAttackPartySkill(rb.Env, b, opponents, skill)
		}
		return action.NewAttackSingleSkill(rb.Env, b, rb.target(b.Type(), alive), skill)
	}
	if b.AttacksParty() {
		return action.NewAttackPartyNormal(rb.Env, b, opponents)
	}
	return action.NewAttackSingleNormal(rb.Env, b, rb.target(b.Type(), alive))
}

func (rb *RoundBuilder) affordableSkill(b *entity.Battler) *core.Skill {
	for _, id := range b.Skills() {
		skill, ok := rb.DB.Skill(id)
		if ok && skill.SPCost <= b.SP() {
			return skill
		}
	}
	return nil
}

func (rb *RoundBuilder) target(team core.TeamType, alive []core.Battler) core.Battler {
	strategy, ok := rb.Targeting[team]
	if !ok || strategy == nil {
		strategy = RandomTarget
	}
	return strategy(alive, rb.Rand)
}
