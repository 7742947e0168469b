package animation

import (
	"testing"

	"rpgbattle-ebiten/core"
)

func TestBattleAnimationPlaysToLastFrame(t *testing.T) {
	a := New(10, 20, &core.AnimationAsset{ID: 1, Name: "Slash", Frames: 3})
	if a.Visible() {
		t.Fatal("new animation should start hidden")
	}
	a.SetVisible(true)

	for i := 0; i < 5; i++ {
		a.Update()
	}
	if a.Frame() != 3 {
		t.Fatalf("expected frame to stop at 3, got %d", a.Frame())
	}
	if a.Progress() != 1 {
		t.Fatalf("expected progress 1, got %v", a.Progress())
	}
}

func TestBattleAnimationDispose(t *testing.T) {
	a := New(0, 0, &core.AnimationAsset{ID: 1, Frames: 2})
	a.SetVisible(true)
	a.Dispose()

	if a.Visible() {
		t.Fatal("disposed animation should not be visible")
	}
	a.Update()
	if a.Frame() != 0 {
		t.Fatalf("disposed animation should not advance, got frame %d", a.Frame())
	}
}

func TestFactoryCurrent(t *testing.T) {
	var f Factory
	if _, ok := f.Current(); ok {
		t.Fatal("expected no current animation")
	}

	handle := f.NewAnimation(5, 6, &core.AnimationAsset{ID: 2, Frames: 4})
	cur, ok := f.Current()
	if !ok {
		t.Fatal("expected current animation")
	}
	if cur.X != 5 || cur.Y != 6 {
		t.Fatalf("unexpected position %d,%d", cur.X, cur.Y)
	}

	handle.Dispose()
	if _, ok := f.Current(); ok {
		t.Fatal("disposed animation should not be current")
	}
}
