// Package animation は戦闘アニメーションの再生状態を扱います。
// 描画は ui パッケージが借用した BattleAnimation を参照して行います。
package animation

import (
	"rpgbattle-ebiten/core"
)

// BattleAnimation は画面上の1か所で再生される戦闘アニメーションです。
// core.AnimationHandle を実装します。
type BattleAnimation struct {
	X, Y  int
	Asset *core.AnimationAsset

	frame    int
	visible  bool
	disposed bool
}

var _ core.AnimationHandle = (*BattleAnimation)(nil)

// New はフレーム0から始まる非表示のアニメーションを生成します。
func New(x, y int, asset *core.AnimationAsset) *BattleAnimation {
	return &BattleAnimation{X: x, Y: y, Asset: asset}
}

func (a *BattleAnimation) Visible() bool {
	return a.visible && !a.disposed
}

func (a *BattleAnimation) SetVisible(visible bool) {
	a.visible = visible
}

func (a *BattleAnimation) Frame() int {
	return a.frame
}

func (a *BattleAnimation) Frames() int {
	return a.Asset.Frames
}

// Update はアニメーションを1フレーム進めます。最終フレームより先には進みません。
func (a *BattleAnimation) Update() {
	if a.disposed || a.frame >= a.Frames() {
		return
	}
	a.frame++
}

// Dispose はアニメーションを破棄します。以降は描画されません。
func (a *BattleAnimation) Dispose() {
	a.disposed = true
	a.visible = false
}

// Disposed は破棄済みかどうかを返します。
func (a *BattleAnimation) Disposed() bool {
	return a.disposed
}

// Progress は再生の進行度を0から1で返します。
func (a *BattleAnimation) Progress() float64 {
	if a.Frames() == 0 {
		return 1
	}
	return float64(a.frame) / float64(a.Frames())
}

// Factory は BattleAnimation を生成する core.AnimationFactory です。
// 生成したアニメーションは描画用に Current から参照できます。
type Factory struct {
	current *BattleAnimation
}

var _ core.AnimationFactory = (*Factory)(nil)

// NewAnimation は新しいアニメーションを生成し、描画対象として記録します。
func (f *Factory) NewAnimation(x, y int, asset *core.AnimationAsset) core.AnimationHandle {
	f.current = New(x, y, asset)
	return f.current
}

// Current は最後に生成され、まだ破棄されていないアニメーションを返します。
func (f *Factory) Current() (*BattleAnimation, bool) {
	if f.current == nil || f.current.Disposed() {
		return nil, false
	}
	return f.current, true
}
