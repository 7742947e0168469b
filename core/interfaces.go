package core

// Battler は戦闘に参加するキャラクターです。
type Battler interface {
	ID() int
	Name() string
	Type() TeamType
	HP() int
	MaxHP() int
	ChangeHP(delta int)
	SP() int
	SetSP(sp int)
	Attack() int
	Defense() int
	Spirit() int
	Agility() int
	AttackAnimation() int
	IsDead() bool
	AddCondition(id ConditionID)
	// SignificantCondition は最も優先度の高いステートを返します。無い場合は nil です。
	SignificantCondition() *Condition
	Party() Party
	BattlePosition() (x, y int)
}

// Party はバトラーの集まり（味方パーティまたは敵グループ）です。
type Party interface {
	// AliveBattlers は生存しているメンバーを並び順で返します。
	AliveBattlers() []Battler
	// RandomAliveBattler は生存メンバーから一様ランダムに1人を返します。全滅時は nil です。
	RandomAliveBattler() Battler
}

// Algorithm は1ターゲット分の効果計算です。Execute は1回だけ呼ばれます。
type Algorithm interface {
	Execute()
	// AffectedHP はHP変化量を返します。ok が false の場合は回避です。
	AffectedHP() (hp int, ok bool)
	AffectedConditions() []ConditionID
	Animation() *AnimationAsset
}

// EffectEngine は攻撃種別ごとの Algorithm を生成します。
type EffectEngine interface {
	Normal(source, target Battler) Algorithm
	Skill(source, target Battler, skill *Skill) Algorithm
}

// MessageSink はメッセージウィンドウへの出力先です。
type MessageSink interface {
	Push(text string)
}

// SoundPlayer は効果音を名前で再生します。
type SoundPlayer interface {
	PlaySE(name string)
}

// BattlerSprite はバトラーの表示です。
type BattlerSprite interface {
	SetAnimationState(cue SpriteCue)
}

// Spriteset はバトラーに対応するスプライトを探します。
type Spriteset interface {
	FindBattler(b Battler) (BattlerSprite, bool)
}

// AnimationHandle は再生中の戦闘アニメーションです。所有者が Dispose します。
type AnimationHandle interface {
	Visible() bool
	SetVisible(visible bool)
	Frame() int
	Frames() int
	Update()
	Dispose()
}

// AnimationFactory は画面座標にアニメーションを生成します。
type AnimationFactory interface {
	NewAnimation(x, y int, asset *AnimationAsset) AnimationHandle
}

// EffectObserver は効果の結果を受け取ります（戦闘履歴など）。
type EffectObserver interface {
	ObserveEffect(record EffectRecord)
}
