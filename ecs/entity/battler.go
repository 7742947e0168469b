package entity

import (
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/ecs/component"

	"github.com/yohamta/donburi"
)

// Battler はECSエンティティを core.Battler として扱うためのラッパーです。
// 値は毎回コンポーネントから読み出すため、同じエンティティのラッパーはいくつ作っても同じ状態を指します。
type Battler struct {
	entry  *donburi.Entry
	roster *Roster
}

var _ core.Battler = (*Battler)(nil)

// Entry は元のエントリを返します。
func (b *Battler) Entry() *donburi.Entry {
	return b.entry
}

func (b *Battler) ID() int {
	return component.ProfileComponent.Get(b.entry).ID
}

func (b *Battler) Name() string {
	return component.ProfileComponent.Get(b.entry).Name
}

func (b *Battler) Type() core.TeamType {
	return component.ProfileComponent.Get(b.entry).Team
}

func (b *Battler) HP() int {
	return component.VitalsComponent.Get(b.entry).HP
}

func (b *Battler) MaxHP() int {
	return component.VitalsComponent.Get(b.entry).MaxHP
}

// ChangeHP はHPを増減します。0から最大HPの範囲に収め、0になった場合は戦闘不能ステートを付与します。
func (b *Battler) ChangeHP(delta int) {
	vitals := component.VitalsComponent.Get(b.entry)
	vitals.HP = clamp(vitals.HP+delta, 0, vitals.MaxHP)
	if vitals.HP == 0 {
		b.AddCondition(core.ConditionDeath)
	}
}

func (b *Battler) SP() int {
	return component.VitalsComponent.Get(b.entry).SP
}

// SetSP はSPを設定します。0から最大SPの範囲に収めます。
func (b *Battler) SetSP(sp int) {
	vitals := component.VitalsComponent.Get(b.entry)
	vitals.SP = clamp(sp, 0, vitals.MaxSP)
}

func (b *Battler) Attack() int {
	return component.StatsComponent.Get(b.entry).Attack
}

func (b *Battler) Defense() int {
	return component.StatsComponent.Get(b.entry).Defense
}

func (b *Battler) Spirit() int {
	return component.StatsComponent.Get(b.entry).Spirit
}

func (b *Battler) Agility() int {
	return component.StatsComponent.Get(b.entry).Agility
}

func (b *Battler) AttackAnimation() int {
	return component.StatsComponent.Get(b.entry).AttackAnimation
}

// AttacksParty は通常攻撃が相手パーティ全員に当たるかどうかを返します。
func (b *Battler) AttacksParty() bool {
	return component.StatsComponent.Get(b.entry).AttacksParty
}

// Skills は使用可能なスキルIDを返します。
func (b *Battler) Skills() []int {
	if !b.entry.HasComponent(component.SkillsComponent) {
		return nil
	}
	return component.SkillsComponent.Get(b.entry).IDs
}

func (b *Battler) IsDead() bool {
	return component.ConditionsComponent.Get(b.entry).Has(core.ConditionDeath)
}

// AddCondition はステートを付与します。
// 戦闘不能が付与された場合はHPを0にし、他のステートを解除します。
func (b *Battler) AddCondition(id core.ConditionID) {
	conditions := component.ConditionsComponent.Get(b.entry)
	if conditions.Has(id) {
		return
	}
	if id == core.ConditionDeath {
		component.VitalsComponent.Get(b.entry).HP = 0
		conditions.IDs = []core.ConditionID{core.ConditionDeath}
		return
	}
	conditions.IDs = append(conditions.IDs, id)
}

// SignificantCondition は付与中のステートのうち優先度が最も高いものを返します。
// 同じ優先度の場合は先に付与されたものを優先します。
func (b *Battler) SignificantCondition() *core.Condition {
	var best *core.Condition
	for _, id := range component.ConditionsComponent.Get(b.entry).IDs {
		c, ok := b.roster.db.Condition(id)
		if !ok {
			continue
		}
		if best == nil || c.Priority > best.Priority {
			best = c
		}
	}
	return best
}

func (b *Battler) Party() core.Party {
	return b.roster.Party(b.Type())
}

func (b *Battler) BattlePosition() (x, y int) {
	pos := component.BattlePositionComponent.Get(b.entry)
	return pos.X, pos.Y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
