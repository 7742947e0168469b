package ui

import (
	"strings"

	"rpgbattle-ebiten/data"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// messagePage はメッセージウィンドウに表示中の行です。
// data.MessageDivider を受け取るとページを改め、行数を超えた分は古い行から流れます。
type messagePage struct {
	limit int
	lines []string
}

func (p *messagePage) push(line string) {
	if line == data.MessageDivider {
		p.lines = p.lines[:0]
		return
	}
	p.lines = append(p.lines, line)
	if over := len(p.lines) - p.limit; over > 0 {
		p.lines = append(p.lines[:0], p.lines[over:]...)
	}
}

func (p *messagePage) line(i int) string {
	if i < len(p.lines) {
		return p.lines[i]
	}
	return ""
}

// MessageWindow は戦闘メッセージを表示するウィンドウです。
type MessageWindow struct {
	container *widget.Container
	rows      []*widget.Text
	page      messagePage
}

// NewMessageWindow は設定された行数のメッセージウィンドウを作成します。
func NewMessageWindow(config *data.Config, font text.Face) *MessageWindow {
	c := config.UI
	m := &MessageWindow{page: messagePage{limit: c.MessageWindow.Lines}}

	m.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(c.Colors.Window)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}),
			widget.RowLayoutOpts.Spacing(2),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(c.Screen.Width, c.MessageWindow.Height),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)

	for i := 0; i < c.MessageWindow.Lines; i++ {
		row := widget.NewText(widget.TextOpts.Text("", &font, c.Colors.White))
		m.rows = append(m.rows, row)
		m.container.AddChild(row)
	}
	return m
}

// Widget はウィンドウのルートウィジェットを返します。
func (m *MessageWindow) Widget() *widget.Container {
	return m.container
}

// Push はメッセージを追加して表示を更新します。
func (m *MessageWindow) Push(lines ...string) {
	if len(lines) == 0 {
		return
	}
	for _, line := range lines {
		m.page.push(strings.TrimRight(line, "\n"))
	}
	for i, row := range m.rows {
		row.Label = m.page.line(i)
	}
}
