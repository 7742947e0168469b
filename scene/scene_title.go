package scene

import (
	"context"
	"fmt"

	"rpgbattle-ebiten/ui"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const gameTitle = "RPG Battle"

// TitleScene はトループを選んで戦闘を始める画面です。
type TitleScene struct {
	resources *ui.SharedResources
	manager   *SceneManager
	ui        *ebitenui.UI
}

// NewTitleScene はデータベースのトループごとにボタンを並べたタイトルシーンを作成します
func NewTitleScene(res *ui.SharedResources, manager *SceneManager) *TitleScene {
	t := &TitleScene{resources: res, manager: manager}
	factory := ui.NewUIFactory(res)
	colors := res.Config.UI.Colors

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	panel := factory.NewPanel()
	rootContainer.AddChild(panel)

	panel.AddChild(factory.NewLabel(gameTitle, colors.White))
	for _, name := range res.DB.TroopNames() {
		panel.AddChild(factory.NewButton(name, func() {
			manager.GoToBattleScene(name)
		}))
	}
	if last := t.lastBattle(); last != "" {
		panel.AddChild(factory.NewLabel(last, colors.Gray))
	}
	panel.AddChild(factory.NewLabel(res.Locale.Tag.String(), colors.Gray))

	t.ui = &ebitenui.UI{Container: rootContainer}
	return t
}

// lastBattle は直近の戦闘の結果を1行で返します。履歴が無ければ空文字です。
func (t *TitleScene) lastBattle() string {
	if t.resources.History == nil {
		return ""
	}
	records, err := t.resources.History.Battles(context.Background(), 1)
	if err != nil {
		t.resources.Logger.Warn().Err(err).Msg("戦闘履歴の取得に失敗しました")
		return ""
	}
	if len(records) == 0 || !records[0].Finished {
		return ""
	}
	r := records[0]
	return fmt.Sprintf("Last: %s / %s wins / %d rounds", r.Troop, r.Winner, r.Rounds)
}

func (t *TitleScene) Update() error {
	t.ui.Update()
	return nil
}

func (t *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(t.resources.Config.UI.Colors.Background)
	t.ui.Draw(screen)
}

func (t *TitleScene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return t.resources.Config.UI.Screen.Width, t.resources.Config.UI.Screen.Height
}
