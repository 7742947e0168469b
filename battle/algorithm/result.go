package algorithm

import (
	"rpgbattle-ebiten/core"
)

// result は Algorithm の結果部分の共通実装です。
// Execute より前に結果を参照するのは呼び出し側の不具合なので panic します。
type result struct {
	executed   bool
	hit        bool
	hp         int
	conditions []core.ConditionID
	animation  *core.AnimationAsset
}

func (r *result) begin() {
	if r.executed {
		panic("algorithm: Execute はターゲットごとに1回だけ呼び出せます")
	}
	r.executed = true
}

func (r *result) mustExecuted() {
	if !r.executed {
		panic("algorithm: Execute より前に結果が参照されました")
	}
}

func (r *result) AffectedHP() (int, bool) {
	r.mustExecuted()
	return r.hp, r.hit
}

func (r *result) AffectedConditions() []core.ConditionID {
	r.mustExecuted()
	return r.conditions
}

func (r *result) Animation() *core.AnimationAsset {
	r.mustExecuted()
	return r.animation
}

// inflict はダメージを記録し、対象が倒れる場合は戦闘不能ステートだけを残します。
func (r *result) inflict(target core.Battler, damage int) {
	r.hit = true
	r.hp = damage
	if damage > 0 && damage >= target.HP() {
		r.conditions = []core.ConditionID{core.ConditionDeath}
	}
}
