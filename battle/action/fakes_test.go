package action

import (
	"fmt"

	"rpgbattle-ebiten/battle/animation"
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"

	"golang.org/x/text/language"
)

var (
	deathCondition  = &core.Condition{ID: core.ConditionDeath, Name: "Death", Priority: 100, MessageActor: " has fallen!", MessageEnemy: " is destroyed!"}
	poisonCondition = &core.Condition{ID: 2, Name: "Poison", Priority: 10, MessageActor: " is poisoned!", MessageEnemy: " is envenomed!"}
)

var testConditions = map[core.ConditionID]*core.Condition{
	deathCondition.ID:  deathCondition,
	poisonCondition.ID: poisonCondition,
}

var testTerms = core.Terms{
	Attacking:      " attacks!",
	Dodge:          " dodged!",
	ActorDamaged:   " damage taken",
	EnemyDamaged:   " damage dealt",
	ActorUndamaged: " is unhurt (ally)",
	EnemyUndamaged: " is unhurt (enemy)",
}

var testSounds = core.SystemSounds{
	Dodge:        "dodge",
	ActorDamaged: "actor_damaged",
	EnemyDamaged: "enemy_damaged",
	EnemyDeath:   "enemy_death",
}

type fakeBattler struct {
	name       string
	team       core.TeamType
	hp, maxHP  int
	sp         int
	x, y       int
	conditions []core.ConditionID
	party      *fakeParty
}

func newFakeBattler(name string, team core.TeamType, hp int) *fakeBattler {
	return &fakeBattler{name: name, team: team, hp: hp, maxHP: hp}
}

func (b *fakeBattler) ID() int              { return 0 }
func (b *fakeBattler) Name() string         { return b.name }
func (b *fakeBattler) Type() core.TeamType  { return b.team }
func (b *fakeBattler) HP() int              { return b.hp }
func (b *fakeBattler) MaxHP() int           { return b.maxHP }
func (b *fakeBattler) SP() int              { return b.sp }
func (b *fakeBattler) SetSP(sp int)         { b.sp = sp }
func (b *fakeBattler) Attack() int          { return 10 }
func (b *fakeBattler) Defense() int         { return 10 }
func (b *fakeBattler) Spirit() int          { return 10 }
func (b *fakeBattler) Agility() int         { return 10 }
func (b *fakeBattler) AttackAnimation() int { return 0 }
func (b *fakeBattler) IsDead() bool         { return b.hp == 0 }

func (b *fakeBattler) ChangeHP(delta int) {
	b.hp = max(0, min(b.maxHP, b.hp+delta))
	if b.hp == 0 {
		b.AddCondition(core.ConditionDeath)
	}
}

func (b *fakeBattler) AddCondition(id core.ConditionID) {
	for _, c := range b.conditions {
		if c == id {
			return
		}
	}
	b.conditions = append(b.conditions, id)
}

func (b *fakeBattler) SignificantCondition() *core.Condition {
	var best *core.Condition
	for _, id := range b.conditions {
		c := testConditions[id]
		if best == nil || c.Priority > best.Priority {
			best = c
		}
	}
	return best
}

func (b *fakeBattler) Party() core.Party {
	if b.party == nil {
		return nil
	}
	return b.party
}

func (b *fakeBattler) BattlePosition() (x, y int) { return b.x, b.y }

// fakeParty は生存メンバーの先頭を「ランダム」に選びます。
type fakeParty struct {
	members []*fakeBattler
}

func newFakeParty(members ...*fakeBattler) *fakeParty {
	p := &fakeParty{members: members}
	for _, m := range members {
		m.party = p
	}
	return p
}

func (p *fakeParty) AliveBattlers() []core.Battler {
	var alive []core.Battler
	for _, m := range p.members {
		if !m.IsDead() {
			alive = append(alive, m)
		}
	}
	return alive
}

func (p *fakeParty) RandomAliveBattler() core.Battler {
	alive := p.AliveBattlers()
	if len(alive) == 0 {
		return nil
	}
	return alive[0]
}

type fakeResult struct {
	hp         int
	hit        bool
	conditions []core.ConditionID
	animation  *core.AnimationAsset
}

type fakeAlgorithm struct {
	result   fakeResult
	executed bool
}

func (a *fakeAlgorithm) Execute() { a.executed = true }

func (a *fakeAlgorithm) AffectedHP() (int, bool) {
	a.mustExecuted()
	return a.result.hp, a.result.hit
}

func (a *fakeAlgorithm) AffectedConditions() []core.ConditionID {
	a.mustExecuted()
	return a.result.conditions
}

func (a *fakeAlgorithm) Animation() *core.AnimationAsset {
	a.mustExecuted()
	return a.result.animation
}

func (a *fakeAlgorithm) mustExecuted() {
	if !a.executed {
		panic("result read before Execute")
	}
}

// fakeEngine はターゲット名ごとに決められた結果を返します。
// 戦闘不能のターゲットには何も起こらない結果（回避）を返します。
type fakeEngine struct {
	results map[string]fakeResult
	calls   []string
	skills  []string
}

func (e *fakeEngine) Normal(source, target core.Battler) core.Algorithm {
	e.calls = append(e.calls, target.Name())
	return &fakeAlgorithm{result: e.resultFor(target)}
}

func (e *fakeEngine) Skill(source, target core.Battler, skill *core.Skill) core.Algorithm {
	e.calls = append(e.calls, target.Name())
	e.skills = append(e.skills, skill.Name)
	return &fakeAlgorithm{result: e.resultFor(target)}
}

func (e *fakeEngine) resultFor(target core.Battler) fakeResult {
	if target.IsDead() {
		return fakeResult{}
	}
	if r, ok := e.results[target.Name()]; ok {
		return r
	}
	return fakeResult{hit: true}
}

type fakeSounds struct {
	played []string
}

func (s *fakeSounds) PlaySE(name string) { s.played = append(s.played, name) }

type fakeSpriteset struct {
	cues []string
}

type fakeSprite struct {
	name string
	set  *fakeSpriteset
}

func (s *fakeSprite) SetAnimationState(cue core.SpriteCue) {
	s.set.cues = append(s.set.cues, fmt.Sprintf("%s:%s", s.name, cue))
}

func (s *fakeSpriteset) FindBattler(b core.Battler) (core.BattlerSprite, bool) {
	return &fakeSprite{name: b.Name(), set: s}, true
}

// recordingFactory は生成したアニメーションと座標を記録します。
type recordingFactory struct {
	created   []*animation.BattleAnimation
	positions [][2]int
}

func (f *recordingFactory) NewAnimation(x, y int, asset *core.AnimationAsset) core.AnimationHandle {
	a := animation.New(x, y, asset)
	f.created = append(f.created, a)
	f.positions = append(f.positions, [2]int{x, y})
	return a
}

type recordingObserver struct {
	records []core.EffectRecord
}

func (o *recordingObserver) ObserveEffect(r core.EffectRecord) {
	o.records = append(o.records, r)
}

type harness struct {
	env      *Env
	engine   *fakeEngine
	messages *data.MessageQueue
	sounds   *fakeSounds
	sprites  *fakeSpriteset
	factory  *recordingFactory
}

func newHarness(wait int, results map[string]fakeResult) *harness {
	h := &harness{
		engine:   &fakeEngine{results: results},
		messages: data.NewMessageQueue(),
		sounds:   &fakeSounds{},
		sprites:  &fakeSpriteset{},
		factory:  &recordingFactory{},
	}
	h.env = &Env{
		Messages:        h.messages,
		Sounds:          h.sounds,
		Spriteset:       h.sprites,
		Engine:          h.engine,
		Animations:      h.factory,
		Locale:          data.NewLocale(language.AmericanEnglish, testTerms),
		SystemSounds:    testSounds,
		WaitFrames:      wait,
		PartyAnimationX: 160,
		PartyAnimationY: 120,
	}
	return h
}
