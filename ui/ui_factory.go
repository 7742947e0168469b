package ui

import (
	"image/color"

	"rpgbattle-ebiten/data"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// UIFactory はUIコンポーネントの生成とスタイリングを一元的に管理します。
type UIFactory struct {
	Config      *data.Config
	Font        text.Face
	ButtonFont  text.Face
	ButtonImage *widget.ButtonImage
}

// NewUIFactory は共有リソースのフォントとボタン画像を使う UIFactory を返します。
func NewUIFactory(res *SharedResources) *UIFactory {
	return &UIFactory{
		Config:      &res.Config,
		Font:        res.Font,
		ButtonFont:  res.ButtonFont,
		ButtonImage: res.ButtonImage,
	}
}

// NewButton はクリックで handler を呼ぶボタンを生成します。
func (f *UIFactory) NewButton(label string, handler func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(f.ButtonImage),
		widget.ButtonOpts.Text(label, &f.ButtonFont, &widget.ButtonTextColor{Idle: f.Config.UI.Colors.White}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			handler()
		}),
	)
}

// NewLabel は中央寄せのテキストを生成します。
func (f *UIFactory) NewLabel(label string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &f.Font, c),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// NewPanel は画面中央に置く縦並びのパネルを生成します。
func (f *UIFactory) NewPanel() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
}
