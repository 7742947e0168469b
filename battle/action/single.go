package action

import (
	"rpgbattle-ebiten/core"
)

// TargetResolver は Action フェーズの最初に実際のターゲットを決め直すアクションが実装します。
type TargetResolver interface {
	ResolveTarget(current core.Battler) core.Battler
}

// single は1人のターゲットに向けたアクションです。
type single struct {
	base
	current core.Battler
}

func newSingle(env *Env, source, target core.Battler) single {
	return single{base: newBase(env, source), current: target}
}

func (s *single) target() core.Battler {
	return s.current
}

// Target は現在のターゲットを返します。再選択後は新しいターゲットです。
func (s *single) Target() core.Battler {
	return s.current
}

// resolveTarget は hooks が TargetResolver を実装していればターゲットを決め直します。
func (s *single) resolveTarget() {
	resolver, ok := s.hooks.(TargetResolver)
	if !ok {
		return
	}
	next := resolver.ResolveTarget(s.current)
	if next == nil || next == s.current {
		return
	}
	s.env.logger().LogRetarget(s.source.Name(), s.current.Name(), next.Name())
	s.current = next
}

func (s *single) finish() bool {
	s.env.logger().LogActionFinished(s.source.Name(), 1)
	return true
}
