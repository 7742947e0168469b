package event

import (
	"rpgbattle-ebiten/core"
)

// GameEvent は、戦闘ロジックから発行されるすべてのイベントを示すマーカーインターフェースです。
// シーンやUIはイベントを受け取って表示を更新し、ロジックの内部状態には直接触れません。
type GameEvent interface {
	isGameEvent()
}

// BattleStateType は戦闘全体の進行状態です。
type BattleStateType string

const (
	StateRoundStart      BattleStateType = "RoundStart"
	StateActionExecution BattleStateType = "ActionExecution"
	StateGameOver        BattleStateType = "GameOver"
)

// StateChangeRequestedGameEvent は、戦闘の進行状態を切り替える必要があることを示すイベントです。
type StateChangeRequestedGameEvent struct {
	NextState BattleStateType
}

func (e StateChangeRequestedGameEvent) isGameEvent() {}

// RoundStartedGameEvent は、新しいラウンドの行動がキューに積まれたことを示すイベントです。
type RoundStartedGameEvent struct {
	Round   int
	Actions int
}

func (e RoundStartedGameEvent) isGameEvent() {}

// ActionStartedGameEvent は、アクションの実行が始まったことを示すイベントです。
type ActionStartedGameEvent struct {
	Source core.Battler
}

func (e ActionStartedGameEvent) isGameEvent() {}

// ActionFinishedGameEvent は、アクションが完了したことを示すイベントです。
type ActionFinishedGameEvent struct {
	Source core.Battler
}

func (e ActionFinishedGameEvent) isGameEvent() {}

// GameOverGameEvent は、どちらかのパーティが全滅したことを示すイベントです。
type GameOverGameEvent struct {
	Winner core.TeamType
	Rounds int
}

func (e GameOverGameEvent) isGameEvent() {}

// DatabaseReloadedGameEvent は、データベースがホットリロードされたことを示すイベントです。
type DatabaseReloadedGameEvent struct {
	Path string
}

func (e DatabaseReloadedGameEvent) isGameEvent() {}
