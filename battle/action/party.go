package action

import (
	"rpgbattle-ebiten/core"
)

// party はパーティの生存メンバー全員に順番に効果を与えるアクションです。
// ターゲットは生成時の生存メンバーで固定され、途中で倒れたメンバーも除外しません。
type party struct {
	base
	targets []core.Battler
	cursor  int
}

// newParty は targetParty の生存メンバーを取り込みます。生存メンバーがいないパーティは呼び出し側で除外してください。
func newParty(env *Env, source core.Battler, targetParty core.Party) party {
	return party{
		base:    newBase(env, source),
		targets: targetParty.AliveBattlers(),
	}
}

func (p *party) target() core.Battler {
	return p.targets[p.cursor]
}

// Targets は生成時に取り込んだターゲットを返します。
func (p *party) Targets() []core.Battler {
	return append([]core.Battler(nil), p.targets...)
}

func (p *party) first() bool {
	return p.cursor == 0
}

func (p *party) finish() bool {
	p.cursor++
	if p.cursor < len(p.targets) {
		p.fire(eventNext)
		return false
	}
	p.env.logger().LogActionFinished(p.source.Name(), len(p.targets))
	return true
}
