package ui

import (
	"image/color"

	"rpgbattle-ebiten/battle/animation"
	"rpgbattle-ebiten/data"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	pingMaxRadius   = 28.0
	pingInnerRatio  = 0.4
	pingStrokeWidth = 2.0
)

// UIAnimationDrawer は再生中の戦闘アニメーションを描画します。
// アニメーションの進行はアクションが行い、ここでは借用して描くだけです。
type UIAnimationDrawer struct {
	animations *animation.Factory
	colors     map[string]color.Color
}

// NewUIAnimationDrawer は factory が生成したアニメーションを描く UIAnimationDrawer を返します。
func NewUIAnimationDrawer(animations *animation.Factory) *UIAnimationDrawer {
	return &UIAnimationDrawer{
		animations: animations,
		colors:     make(map[string]color.Color),
	}
}

// Draw は表示中のアニメーションがあれば描画します。
func (d *UIAnimationDrawer) Draw(screen *ebiten.Image) {
	anim, ok := d.animations.Current()
	if !ok || !anim.Visible() {
		return
	}
	d.drawPing(screen, float32(anim.X), float32(anim.Y), anim.Progress(), d.color(anim.Asset.Color))
}

func (d *UIAnimationDrawer) color(hex string) color.Color {
	if hex == "" {
		return color.White
	}
	if c, ok := d.colors[hex]; ok {
		return c
	}
	c := data.ParseHexColor(hex)
	d.colors[hex] = c
	return c
}

// drawPing は中心から広がりながら消えていく輪を描画します。
func (d *UIAnimationDrawer) drawPing(screen *ebiten.Image, centerX, centerY float32, progress float64, base color.Color) {
	if progress < 0 || progress > 1 {
		return
	}
	radius, alpha := pingShape(progress)

	r, g, b, _ := base.RGBA()
	c := color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(255 * alpha),
	}
	vector.StrokeCircle(screen, centerX, centerY, radius, pingStrokeWidth, c, true)
	vector.StrokeCircle(screen, centerX, centerY, radius*pingInnerRatio, pingStrokeWidth*0.75, c, true)
}

// pingShape は進行度に対する輪の半径と不透明度を返します。
func pingShape(progress float64) (radius float32, alpha float64) {
	return pingMaxRadius * float32(progress), 1.0 - progress*0.8
}
