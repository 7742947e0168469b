package action

import (
	"context"
	"fmt"
	"slices"

	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"

	"github.com/looplab/fsm"
)

// Action はキューから取り出された1件のバトルアクションです。
// 呼び出し側は完了が報告されるまで毎ティック Execute を1回呼び、その後アクションを破棄します。
type Action interface {
	// Execute はアクションを1ティック進め、アクション全体が完了したティックでだけ true を返します。
	Execute() bool
	Source() core.Battler
	State() core.ActionState
	// Animation は再生中のアニメーションを描画用に貸し出します。無ければ nil です。
	Animation() core.AnimationHandle
}

const (
	eventBegin   = "begin"
	eventApply   = "apply"
	eventInflict = "inflict"
	eventSettle  = "settle"
	eventNext    = "next"
)

// PhaseTransitions はアクションのフェーズ遷移表です。
// next は全体攻撃で次のターゲットに戻るときだけ使われます。
var PhaseTransitions = fsm.Events{
	{Name: eventBegin, Src: []string{string(core.StatePreAction)}, Dst: string(core.StateAction)},
	{Name: eventApply, Src: []string{string(core.StateAction)}, Dst: string(core.StatePostAction)},
	{Name: eventInflict, Src: []string{string(core.StatePostAction)}, Dst: string(core.StateResultAction)},
	{Name: eventSettle, Src: []string{string(core.StatePostAction), string(core.StateResultAction)}, Dst: string(core.StateFinished)},
	{Name: eventNext, Src: []string{string(core.StateFinished)}, Dst: string(core.StatePreAction)},
}

// phaseHooks はターゲットの形と攻撃の種類ごとに異なる処理です。
type phaseHooks interface {
	// target は現在処理中のターゲットです。
	target() core.Battler
	// applyEffect は Action フェーズの処理です。効果を計算して適用します。
	applyEffect()
	// reportEffect は PostAction フェーズの処理です。結果のメッセージと演出を出します。
	reportEffect()
	// finish は Finished フェーズの待機が明けたときに呼ばれ、アクション全体の完了を返します。
	finish() bool
}

// base は全アクション共通の状態機械です。
type base struct {
	env    *Env
	source core.Battler
	hooks  phaseHooks

	phase  *fsm.FSM
	gate   *animationGate
	wait   int
	effect core.Algorithm
	done   bool
}

func newBase(env *Env, source core.Battler) base {
	b := base{
		env:    env,
		source: source,
		gate:   newAnimationGate(),
		wait:   env.waitFrames(),
	}
	logger := env.logger()
	b.phase = fsm.NewFSM(string(core.StatePreAction), PhaseTransitions, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			logger.LogPhase(source.Name(), e.Src, e.Dst)
		},
	})
	return b
}

func (b *base) Source() core.Battler {
	return b.source
}

func (b *base) State() core.ActionState {
	return core.ActionState(b.phase.Current())
}

func (b *base) Animation() core.AnimationHandle {
	return b.gate.handle
}

func (b *base) Execute() bool {
	if b.done {
		return false
	}
	if b.gate.playing() {
		b.gate.step()
		return false
	}

	switch b.State() {
	case core.StatePreAction:
		b.preAction()
		b.fire(eventBegin)
	case core.StateAction:
		b.hooks.applyEffect()
		b.fire(eventApply)
	case core.StatePostAction:
		if !b.tick() {
			return false
		}
		b.hooks.reportEffect()
		b.observe()
		if len(b.result().AffectedConditions()) > 0 {
			b.fire(eventInflict)
		} else {
			b.fire(eventSettle)
		}
	case core.StateResultAction:
		if !b.tick() {
			return false
		}
		b.resultAction()
		b.fire(eventSettle)
	case core.StateFinished:
		if !b.tick() {
			return false
		}
		b.done = b.hooks.finish()
		return b.done
	}
	return false
}

// tick は待機カウンタを1減らし、0になったティックでだけ true を返します。
// true を返すときカウンタは次のフェーズのために戻されます。
func (b *base) tick() bool {
	b.wait--
	if b.wait > 0 {
		return false
	}
	b.wait = b.env.waitFrames()
	return true
}

func (b *base) fire(event string) {
	if err := b.phase.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("action: %s のアクションで不正なフェーズ遷移です (%s): %v", b.source.Name(), event, err))
	}
}

func (b *base) result() core.Algorithm {
	if b.effect == nil {
		panic(fmt.Sprintf("action: %s のアクションで効果が計算される前に結果が参照されました", b.source.Name()))
	}
	return b.effect
}

func (b *base) preAction() {
	b.env.Messages.Push(data.MessageDivider)
	b.env.Messages.Push(b.source.Name() + b.env.Locale.Terms.Attacking)
}

// execute はターゲット1人分の効果を計算し、HPの変化とステートをターゲットに適用します。
func (b *base) execute(alg core.Algorithm, target core.Battler) {
	b.env.setCue(b.source, core.CueSkillUse)

	alg.Execute()
	b.effect = alg

	if hp, ok := alg.AffectedHP(); ok {
		target.ChangeHP(-hp)
	}
	for _, id := range alg.AffectedConditions() {
		target.AddCondition(id)
	}
}

// playAnimation は (x, y) にアニメーションを生成し、所有権をゲートに渡します。
func (b *base) playAnimation(x, y int) {
	asset := b.result().Animation()
	if asset == nil || b.env.Animations == nil {
		return
	}
	b.env.logger().LogAnimation(b.source.Name(), asset.Name, asset.Frames)
	b.gate.attach(b.env.Animations.NewAnimation(x, y, asset))
}

// reportDamage は回避、ノーダメージ、ダメージのいずれかのメッセージと演出を出します。
func (b *base) reportDamage(target core.Battler) {
	terms := b.env.Locale.Terms
	sounds := b.env.SystemSounds
	isAlly := target.Type() == core.TeamAlly

	hp, ok := b.result().AffectedHP()
	if !ok {
		b.env.Messages.Push(target.Name() + terms.Dodge)
		b.env.playSE(sounds.Dodge)
		return
	}

	switch {
	case hp == 0 && isAlly:
		b.env.Messages.Push(target.Name() + terms.ActorUndamaged)
	case hp == 0:
		b.env.Messages.Push(target.Name() + terms.EnemyUndamaged)
	case isAlly:
		b.env.Messages.Push(target.Name() + " " + b.env.Locale.Number(hp) + terms.ActorDamaged)
	default:
		b.env.Messages.Push(target.Name() + " " + b.env.Locale.Number(hp) + terms.EnemyDamaged)
	}
	if isAlly {
		b.env.playSE(sounds.ActorDamaged)
	} else {
		b.env.playSE(sounds.EnemyDamaged)
	}
	b.env.setCue(target, core.CueDamage)
}

// resultAction はターゲットの最も重要なステートに応じた演出とメッセージを出します。
func (b *base) resultAction() {
	target := b.hooks.target()
	condition := target.SignificantCondition()
	if condition == nil {
		return
	}

	if condition.ID == core.ConditionDeath {
		b.env.setCue(target, core.CueDead)
		b.env.playSE(b.env.SystemSounds.EnemyDeath)
	}
	if target.Type() == core.TeamAlly {
		b.env.Messages.Push(target.Name() + condition.MessageActor)
	} else {
		b.env.Messages.Push(target.Name() + condition.MessageEnemy)
	}
}

func (b *base) observe() {
	if b.env.Observer == nil {
		return
	}
	target := b.hooks.target()
	alg := b.result()
	hp, hit := alg.AffectedHP()
	b.env.Observer.ObserveEffect(core.EffectRecord{
		Source:     b.source.Name(),
		SourceTeam: b.source.Type(),
		Target:     target.Name(),
		TargetTeam: target.Type(),
		SkillID:    b.skillID(),
		HP:         hp,
		Hit:        hit,
		Conditions: alg.AffectedConditions(),
		Killed:     slices.Contains(alg.AffectedConditions(), core.ConditionDeath),
	})
}

// skillID は通常攻撃なら0を返します。
func (b *base) skillID() int {
	if s, ok := b.hooks.(interface{ skill() *core.Skill }); ok {
		return s.skill().ID
	}
	return 0
}
