package battle

import (
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/ecs/entity"
	"rpgbattle-ebiten/event"

	"github.com/rs/zerolog"
)

// Context は戦闘の各状態が共通して必要とする依存関係をまとめた構造体です。
type Context struct {
	Roster  *entity.Roster
	Runner  *Runner
	Rounds  *RoundBuilder
	Logger  zerolog.Logger
	Round   int
	Winner  core.TeamType
	Decided bool
}

// BattleState は戦闘の各状態が満たすべきインターフェースです。
type BattleState interface {
	Update(ctx *Context) ([]event.GameEvent, error)
}

// --- RoundStartState ---

// RoundStartState は勝敗を判定し、決着していなければ次のラウンドのアクションを積みます。
type RoundStartState struct{}

func (s *RoundStartState) Update(ctx *Context) ([]event.GameEvent, error) {
	if ev, over := judge(ctx); over {
		return ev, nil
	}

	actions := ctx.Rounds.Build()
	ctx.Round++
	ctx.Runner.Enqueue(actions...)
	ctx.Logger.Debug().Int("round", ctx.Round).Int("actions", len(actions)).Msg("ラウンド開始")

	return []event.GameEvent{
		event.RoundStartedGameEvent{Round: ctx.Round, Actions: len(actions)},
		event.StateChangeRequestedGameEvent{NextState: event.StateActionExecution},
	}, nil
}

// --- ActionExecutionState ---

// ActionExecutionState はキューのアクションを1ティックずつ進めます。
// 行動者が自分の番までに倒れていたアクションは実行せずに捨てます。
type ActionExecutionState struct{}

func (s *ActionExecutionState) Update(ctx *Context) ([]event.GameEvent, error) {
	var gameEvents []event.GameEvent

	dropDeadSources(ctx)
	if ctx.Runner.Idle() {
		return []event.GameEvent{event.StateChangeRequestedGameEvent{NextState: event.StateRoundStart}}, nil
	}

	current, started, finished := ctx.Runner.Update()
	if started {
		gameEvents = append(gameEvents, event.ActionStartedGameEvent{Source: current.Source()})
	}
	if !finished {
		return gameEvents, nil
	}
	gameEvents = append(gameEvents, event.ActionFinishedGameEvent{Source: current.Source()})

	if ev, over := judge(ctx); over {
		ctx.Runner.Clear()
		gameEvents = append(gameEvents, ev...)
	}
	return gameEvents, nil
}

// --- GameOverState ---

// GameOverState は何もしません。シーン側が結果を表示します。
type GameOverState struct{}

func (s *GameOverState) Update(ctx *Context) ([]event.GameEvent, error) {
	return nil, nil
}

func dropDeadSources(ctx *Context) {
	for !ctx.Runner.started {
		current := ctx.Runner.Current()
		if current == nil || !current.Source().IsDead() {
			return
		}
		ctx.Logger.Debug().Str("source", current.Source().Name()).Msg("行動者が戦闘不能のためアクションを取り消しました")
		ctx.Runner.drop()
	}
}

// judge はどちらかのパーティが全滅していれば勝者を決め、ゲームオーバーのイベントを返します。
func judge(ctx *Context) ([]event.GameEvent, bool) {
	allies := ctx.Roster.Party(core.TeamAlly)
	enemies := ctx.Roster.Party(core.TeamEnemy)

	switch {
	case enemies.IsDefeated():
		ctx.Winner = core.TeamAlly
	case allies.IsDefeated():
		ctx.Winner = core.TeamEnemy
	default:
		return nil, false
	}
	ctx.Decided = true
	ctx.Logger.Info().Stringer("winner", ctx.Winner).Int("rounds", ctx.Round).Msg("戦闘終了")
	return []event.GameEvent{
		event.GameOverGameEvent{Winner: ctx.Winner, Rounds: ctx.Round},
		event.StateChangeRequestedGameEvent{NextState: event.StateGameOver},
	}, true
}
