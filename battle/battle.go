package battle

import (
	"fmt"
	"math/rand"

	"rpgbattle-ebiten/battle/action"
	"rpgbattle-ebiten/battle/algorithm"
	"rpgbattle-ebiten/battle/animation"
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/ecs/entity"
	"rpgbattle-ebiten/event"

	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Options は戦闘の生成に必要な情報です。
type Options struct {
	Config data.BattleConfig
	DB     *data.Database
	Locale *data.Locale
	Troop  *data.Troop
	Rand   *rand.Rand
	Logger zerolog.Logger
	// Observer は省略可能です。戦闘履歴の記録などに使います。
	Observer core.EffectObserver
	// Sounds は省略可能です。nil なら効果音を鳴らしません。
	Sounds core.SoundPlayer
	// Targeting はチームごとの狙いの決め方です。未指定のチームはランダムです。
	Targeting map[core.TeamType]TargetingStrategy
}

// Battle は1回の戦闘です。ゲームループから毎ティック Update を呼びます。
type Battle struct {
	Env        *action.Env
	Messages   *data.MessageQueue
	Animations *animation.Factory

	ctx     *Context
	states  map[event.BattleStateType]BattleState
	current event.BattleStateType
}

// New はトループを配置し、最初のラウンドを待つ戦闘を生成します。
func New(opts Options) (*Battle, error) {
	if opts.Troop == nil {
		return nil, fmt.Errorf("トループが指定されていません")
	}
	if opts.Locale == nil {
		return nil, fmt.Errorf("ロケールが指定されていません")
	}

	roster := entity.NewRoster(donburi.NewWorld(), opts.DB, opts.Rand)
	if err := roster.SpawnTroop(opts.Troop); err != nil {
		return nil, fmt.Errorf("トループ %q の配置に失敗しました: %w", opts.Troop.Name, err)
	}

	battleLogger := data.NewBattleLogger(opts.Logger)
	messages := data.NewMessageQueue()
	animations := &animation.Factory{}

	env := action.NewEnv(opts.Config, opts.DB, opts.Locale)
	env.Messages = messages
	env.Animations = animations
	env.Engine = algorithm.NewEngine(opts.Rand, opts.DB, opts.Config, battleLogger)
	env.Logger = battleLogger
	env.Observer = opts.Observer
	env.Sounds = opts.Sounds

	return &Battle{
		Env:        env,
		Messages:   messages,
		Animations: animations,
		ctx: &Context{
			Roster: roster,
			Runner: NewRunner(),
			Rounds: &RoundBuilder{
				Env:       env,
				Roster:    roster,
				DB:        opts.DB,
				Rand:      opts.Rand,
				Targeting: opts.Targeting,
			},
			Logger: opts.Logger,
		},
		states: map[event.BattleStateType]BattleState{
			event.StateRoundStart:      &RoundStartState{},
			event.StateActionExecution: &ActionExecutionState{},
			event.StateGameOver:        &GameOverState{},
		},
		current: event.StateRoundStart,
	}, nil
}

// Update は戦闘を1ティック進め、発生したイベントを返します。
func (b *Battle) Update() ([]event.GameEvent, error) {
	state, ok := b.states[b.current]
	if !ok {
		return nil, fmt.Errorf("未知の戦闘状態です: %s", b.current)
	}
	gameEvents, err := state.Update(b.ctx)
	if err != nil {
		return nil, fmt.Errorf("戦闘状態 %s の更新に失敗しました: %w", b.current, err)
	}

	for _, ev := range gameEvents {
		switch e := ev.(type) {
		case event.StateChangeRequestedGameEvent:
			b.current = e.NextState
		case event.GameOverGameEvent:
			b.announce(e.Winner)
		}
	}
	return gameEvents, nil
}

func (b *Battle) announce(winner core.TeamType) {
	terms := b.Env.Locale.Terms
	b.Messages.Push(data.MessageDivider)
	if winner == core.TeamAlly {
		b.Messages.Push(terms.Victory)
	} else {
		b.Messages.Push(terms.Defeat)
	}
}

// Roster は戦闘に参加しているバトラーを返します。
func (b *Battle) Roster() *entity.Roster {
	return b.ctx.Roster
}

// CurrentAction は実行中のアクションを返します。無ければ nil です。
func (b *Battle) CurrentAction() action.Action {
	return b.ctx.Runner.Current()
}

// State は戦闘の進行状態を返します。
func (b *Battle) State() event.BattleStateType {
	return b.current
}

// Round は現在のラウンド数を返します。
func (b *Battle) Round() int {
	return b.ctx.Round
}

// Winner は決着していれば勝ったチームを返します。
func (b *Battle) Winner() (core.TeamType, bool) {
	return b.ctx.Winner, b.ctx.Decided
}

// Over は決着したかどうかを返します。
func (b *Battle) Over() bool {
	return b.ctx.Decided
}
