package core

// --- Enums and Constants ---

type TeamType int
type ActionState string
type SpriteCue string
type ConditionID int

const (
	TeamAlly  TeamType = 0
	TeamEnemy TeamType = 1
)

// Opponent は対立するチームを返します。
func (t TeamType) Opponent() TeamType {
	if t == TeamAlly {
		return TeamEnemy
	}
	return TeamAlly
}

func (t TeamType) String() string {
	if t == TeamAlly {
		return "ally"
	}
	return "enemy"
}

// アクション1件のフェーズです。looplab/fsm の状態名としても使われます。
const (
	StatePreAction    ActionState = "PreAction"
	StateAction       ActionState = "Action"
	StatePostAction   ActionState = "PostAction"
	StateResultAction ActionState = "ResultAction"
	StateFinished     ActionState = "Finished"
)

// バトラースプライトに送る演出キューです。
const (
	CueIdle     SpriteCue = "Idle"
	CueSkillUse SpriteCue = "SkillUse"
	CueDamage   SpriteCue = "Damage"
	CueDead     SpriteCue = "Dead"
)

// ConditionDeath は戦闘不能ステートのIDです。
const ConditionDeath ConditionID = 1

// DefaultWaitFrames はフェーズ間の待機フレーム数の既定値です。
const DefaultWaitFrames = 30

// --- Data Structures ---

// Condition はステート（状態異常）の定義です。
// MessageActor / MessageEnemy はバトラー名の後ろに連結されるメッセージです。
type Condition struct {
	ID           ConditionID `yaml:"id"`
	Name         string      `yaml:"name"`
	Priority     int         `yaml:"priority"`
	MessageActor string      `yaml:"message_actor"`
	MessageEnemy string      `yaml:"message_enemy"`
}

// Skill はスキル定義です。Formula が空の場合はエンジン既定の計算式を使います。
type Skill struct {
	ID            int           `yaml:"id"`
	Name          string        `yaml:"name"`
	SPCost        int           `yaml:"sp_cost"`
	Power         int           `yaml:"power"`
	HitRate       int           `yaml:"hit_rate"`
	Variance      int           `yaml:"variance"`
	AnimationID   int           `yaml:"animation"`
	Formula       string        `yaml:"formula"`
	Conditions    []ConditionID `yaml:"conditions"`
	ConditionRate int           `yaml:"condition_rate"`
	TargetsParty  bool          `yaml:"targets_party"`
}

// AnimationAsset は戦闘アニメーションの素材情報です。
type AnimationAsset struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Frames int    `yaml:"frames"`
	Color  string `yaml:"color"`
}

// Terms はバトルメッセージ用の用語です。いずれもバトラー名の後ろに連結されます。
type Terms struct {
	Attacking      string `yaml:"attacking"`
	Dodge          string `yaml:"dodge"`
	ActorDamaged   string `yaml:"actor_damaged"`
	EnemyDamaged   string `yaml:"enemy_damaged"`
	ActorUndamaged string `yaml:"actor_undamaged"`
	EnemyUndamaged string `yaml:"enemy_undamaged"`
	// Victory と Defeat は戦闘終了時に単独で表示されます。
	Victory string `yaml:"victory"`
	Defeat  string `yaml:"defeat"`
}

// SystemSounds はシステム効果音の名前です。
type SystemSounds struct {
	Dodge        string `yaml:"dodge"`
	ActorDamaged string `yaml:"actor_damaged"`
	EnemyDamaged string `yaml:"enemy_damaged"`
	EnemyDeath   string `yaml:"enemy_death"`
}

// EffectRecord は1ターゲット分の効果結果です。戦闘履歴に記録されます。
type EffectRecord struct {
	Source     string
	SourceTeam TeamType
	Target     string
	TargetTeam TeamType
	SkillID    int
	HP         int
	Hit        bool
	Conditions []ConditionID
	Killed     bool
}
