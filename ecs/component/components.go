package component

// ECSのCに相当するコンポーネント定義を集約します。

import (
	"rpgbattle-ebiten/core"
)

// Profile はバトラーの不変的な設定を保持します。
type Profile struct {
	ID    int
	Name  string
	Team  core.TeamType
	Index int // パーティ内の並び順です。全体攻撃の処理順にもなります。
}

// Vitals はHPとSPを保持します。
type Vitals struct {
	HP    int
	MaxHP int
	SP    int
	MaxSP int
}

// Stats は能力値を保持します。
type Stats struct {
	Attack          int
	Defense         int
	Spirit          int
	Agility         int
	AttackAnimation int  // 通常攻撃のアニメーションID。0はなし。
	AttacksParty    bool // 通常攻撃が相手パーティ全員に当たるかどうか。
}

// Conditions は付与されているステートを付与順に保持します。
type Conditions struct {
	IDs []core.ConditionID
}

// Has は指定ステートが付与されているかを返します。
func (c *Conditions) Has(id core.ConditionID) bool {
	for _, have := range c.IDs {
		if have == id {
			return true
		}
	}
	return false
}

// BattlePosition は戦闘画面上の座標です。
type BattlePosition struct {
	X int
	Y int
}

// Skills は使用可能なスキルIDです。
type Skills struct {
	IDs []int
}
