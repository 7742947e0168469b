package component

import (
	"github.com/yohamta/donburi"
)

// --- Componentの型定義 ---
// 各コンポーネントにユニークな型情報を持たせます。
var (
	ProfileComponent        = donburi.NewComponentType[Profile]()
	VitalsComponent         = donburi.NewComponentType[Vitals]()
	StatsComponent          = donburi.NewComponentType[Stats]()
	ConditionsComponent     = donburi.NewComponentType[Conditions]()
	BattlePositionComponent = donburi.NewComponentType[BattlePosition]()
	SkillsComponent         = donburi.NewComponentType[Skills]()
)
