package scene

import (
	"context"
	"fmt"
	"math/rand"

	"rpgbattle-ebiten/battle"
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/event"
	"rpgbattle-ebiten/history"
	"rpgbattle-ebiten/ui"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// BattleScene は1回の戦闘を自動で進めて表示するシーンです。
type BattleScene struct {
	resources *ui.SharedResources
	manager   *SceneManager
	logger    zerolog.Logger

	battle    *battle.Battle
	recorder  *history.Recorder
	spriteset *ui.Spriteset
	drawer    *ui.UIAnimationDrawer
	window    *ui.MessageWindow
	factory   *ui.UIFactory

	root *widget.Container
	ui   *ebitenui.UI
}

// NewBattleScene は troop との戦闘を配置したシーンを作成します。
// 履歴データベースがあれば、戦闘の効果を記録します。
func NewBattleScene(res *ui.SharedResources, manager *SceneManager, troop string) (*BattleScene, error) {
	def, ok := res.DB.Troop(troop)
	if !ok {
		return nil, fmt.Errorf("トループ %q が見つかりません", troop)
	}
	seed := res.Rand.Int63()
	logger := res.Logger.With().Str("troop", troop).Int64("seed", seed).Logger()

	bs := &BattleScene{
		resources: res,
		manager:   manager,
		logger:    logger,
		factory:   ui.NewUIFactory(res),
	}

	var observer core.EffectObserver
	if res.History != nil {
		rec, err := res.History.BeginBattle(context.Background(), troop, seed)
		if err != nil {
			logger.Warn().Err(err).Msg("戦闘履歴を記録せずに続行します")
		} else {
			bs.recorder = rec
			observer = rec
		}
	}

	b, err := battle.New(battle.Options{
		Config:   res.Config.Battle,
		DB:       res.DB,
		Locale:   res.Locale,
		Troop:    def,
		Rand:     rand.New(rand.NewSource(seed)),
		Logger:   logger,
		Observer: observer,
		Sounds:   res.Sounds,
	})
	if err != nil {
		return nil, err
	}
	bs.battle = b

	battlers := b.Roster().All()
	members := make([]core.Battler, len(battlers))
	for i, m := range battlers {
		members[i] = m
	}
	bs.spriteset = ui.NewSpriteset(&res.Config, res.Font, members)
	b.Env.Spriteset = bs.spriteset
	bs.drawer = ui.NewUIAnimationDrawer(b.Animations)

	bs.window = ui.NewMessageWindow(&res.Config, res.Font)
	bs.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	bs.root.AddChild(bs.window.Widget())
	bs.ui = &ebitenui.UI{Container: bs.root}

	logger.Info().Int("battlers", len(members)).Msg("戦闘を開始します")
	return bs, nil
}

func (bs *BattleScene) Update() error {
	gameEvents, err := bs.battle.Update()
	if err != nil {
		return err
	}
	bs.window.Push(bs.battle.Messages.Drain()...)
	for _, ev := range gameEvents {
		switch e := ev.(type) {
		case event.RoundStartedGameEvent:
			bs.logger.Debug().Int("round", e.Round).Int("actions", e.Actions).Msg("ラウンド開始")
		case event.GameOverGameEvent:
			bs.finish(e)
		}
	}

	bs.spriteset.Update()
	bs.ui.Update()
	return nil
}

// finish は勝敗を記録し、タイトルへ戻るボタンを表示します。
func (bs *BattleScene) finish(e event.GameOverGameEvent) {
	bs.logger.Info().Str("winner", e.Winner.String()).Int("rounds", e.Rounds).Msg("戦闘が終了しました")

	panel := bs.factory.NewPanel()
	panel.AddChild(bs.factory.NewLabel(fmt.Sprintf("%s wins (%d rounds)", e.Winner, e.Rounds), bs.resources.Config.UI.Colors.White))

	if bs.recorder != nil {
		ctx := context.Background()
		if err := bs.recorder.Finish(ctx, e.Winner, e.Rounds); err != nil {
			bs.logger.Warn().Err(err).Msg("戦闘結果の記録に失敗しました")
		}
		summaries, err := bs.resources.History.Summary(ctx, bs.recorder.BattleID())
		if err != nil {
			bs.logger.Warn().Err(err).Msg("戦闘の集計に失敗しました")
		}
		for _, s := range summaries {
			line := fmt.Sprintf("%s: %s dmg, %d kills", s.Source, bs.resources.Locale.Number(s.Damage), s.Kills)
			panel.AddChild(bs.factory.NewLabel(line, bs.resources.Config.UI.Colors.Gray))
		}
	}

	panel.AddChild(bs.factory.NewButton("Title", bs.manager.GoToTitleScene))
	bs.root.AddChild(panel)
}

func (bs *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(bs.resources.Config.UI.Colors.Background)
	bs.spriteset.Draw(screen)
	bs.drawer.Draw(screen)
	bs.ui.Draw(screen)
}

func (bs *BattleScene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return bs.resources.Config.UI.Screen.Width, bs.resources.Config.UI.Screen.Height
}
