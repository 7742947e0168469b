package action

import (
	"context"
	"fmt"

	"rpgbattle-ebiten/core"

	"github.com/looplab/fsm"
)

// アニメーションゲートの状態です。
const (
	GatePlaying = "Playing"
	GateDone    = "Done"
)

const (
	gateEventPlay   = "play"
	gateEventFinish = "finish"
)

// GateTransitions はアニメーションゲートの遷移表です。
var GateTransitions = fsm.Events{
	{Name: gateEventPlay, Src: []string{GateDone}, Dst: GatePlaying},
	{Name: gateEventFinish, Src: []string{GatePlaying}, Dst: GateDone},
}

// animationGate は再生中のアニメーションを所有し、再生が終わるまで外側の状態機械を止めます。
type animationGate struct {
	machine *fsm.FSM
	handle  core.AnimationHandle
}

func newAnimationGate() *animationGate {
	return &animationGate{
		machine: fsm.NewFSM(GateDone, GateTransitions, fsm.Callbacks{}),
	}
}

// attach はアニメーションの所有権を受け取ります。
func (g *animationGate) attach(h core.AnimationHandle) {
	g.handle = h
	g.fire(gateEventPlay)
}

func (g *animationGate) playing() bool {
	return g.machine.Is(GatePlaying)
}

// step はアニメーションを1フレーム進めます。最終フレームに達していれば破棄してゲートを開きます。
func (g *animationGate) step() {
	h := g.handle
	if !h.Visible() {
		h.SetVisible(true)
	}
	if h.Frame() >= h.Frames() {
		h.Dispose()
		g.handle = nil
		g.fire(gateEventFinish)
		return
	}
	h.Update()
}

func (g *animationGate) fire(event string) {
	if err := g.machine.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("action: アニメーションゲートの不正な遷移です (%s): %v", event, err))
	}
}
