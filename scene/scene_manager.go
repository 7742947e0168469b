// Package scene は bamenn のシーケンスで切り替わるゲーム画面を提供します。
package scene

import (
	"rpgbattle-ebiten/event"
	"rpgbattle-ebiten/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/noppikinatta/bamenn"
)

// Sceneは、bamennで管理される全てのシーンが満たすべきインターフェースです。
type Scene interface {
	ebiten.Game
}

// SceneManagerはbamennのシーケンスと共有リソースを管理します
type SceneManager struct {
	Sequence  *bamenn.Sequence
	resources *ui.SharedResources
	onTitle   bool
}

// NewSceneManagerはタイトルシーンから始まるシーンマネージャを作成します
func NewSceneManager(res *ui.SharedResources) *SceneManager {
	m := &SceneManager{resources: res}
	m.Sequence = bamenn.NewSequence(m.newTitleScene())
	m.onTitle = true
	return m
}

func (m *SceneManager) newTitleScene() Scene {
	return NewTitleScene(m.resources, m)
}

// GoToTitleScene はタイトルシーンに切り替えます。
func (m *SceneManager) GoToTitleScene() {
	m.Sequence.Switch(m.newTitleScene())
	m.onTitle = true
}

// GoToBattleScene は troop との戦闘を始めます。
func (m *SceneManager) GoToBattleScene(troop string) {
	scene, err := NewBattleScene(m.resources, m, troop)
	if err != nil {
		m.resources.Logger.Error().Err(err).Str("troop", troop).Msg("バトルシーンへの切り替えに失敗しました")
		return
	}
	m.Sequence.Switch(scene)
	m.onTitle = false
}

// Notify はシーンの外で起きたイベントを受け取ります。
// データベースが再読み込みされると、トループ一覧が変わりうるためタイトル画面を作り直します。
func (m *SceneManager) Notify(ev event.GameEvent) {
	switch ev.(type) {
	case event.DatabaseReloadedGameEvent:
		if m.onTitle {
			m.GoToTitleScene()
		}
	}
}
