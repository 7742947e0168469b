package ui

import (
	"image/color"
	"reflect"
	"testing"
	"testing/fstest"

	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"

	resource "github.com/quasilyte/ebitengine-resource"
	"github.com/rs/zerolog"
)

type stubBattler struct {
	id   int
	team core.TeamType
	hp   int
}

func (b *stubBattler) ID() int                                { return b.id }
func (b *stubBattler) Name() string                           { return "stub" }
func (b *stubBattler) Type() core.TeamType                    { return b.team }
func (b *stubBattler) HP() int                                { return b.hp }
func (b *stubBattler) MaxHP() int                             { return 10 }
func (b *stubBattler) ChangeHP(delta int)                     { b.hp += delta }
func (b *stubBattler) SP() int                                { return 0 }
func (b *stubBattler) SetSP(int)                              {}
func (b *stubBattler) Attack() int                            { return 0 }
func (b *stubBattler) Defense() int                           { return 0 }
func (b *stubBattler) Spirit() int                            { return 0 }
func (b *stubBattler) Agility() int                           { return 0 }
func (b *stubBattler) AttackAnimation() int                   { return 0 }
func (b *stubBattler) IsDead() bool                           { return b.hp <= 0 }
func (b *stubBattler) AddCondition(core.ConditionID)          {}
func (b *stubBattler) SignificantCondition() *core.Condition  { return nil }
func (b *stubBattler) Party() core.Party                      { return nil }
func (b *stubBattler) BattlePosition() (x, y int)             { return 0, 0 }

func testConfig() *data.Config {
	cfg := &data.Config{}
	cfg.UI.Battlefield.CueFrames = 3
	cfg.UI.Colors = data.ParsedColors{
		Ally:   color.RGBA{B: 255, A: 255},
		Enemy:  color.RGBA{R: 255, A: 255},
		Damage: color.RGBA{R: 255, G: 255, A: 255},
		Dead:   color.RGBA{A: 255},
	}
	return cfg
}

func TestMessagePage(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{name: "fills up to the limit", lines: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "scrolls old lines out", lines: []string{"a", "b", "c", "d"}, want: []string{"b", "c", "d"}},
		{name: "divider starts a new page", lines: []string{"a", "b", data.MessageDivider, "c"}, want: []string{"c"}},
		{name: "divider only", lines: []string{"a", data.MessageDivider}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := messagePage{limit: 3}
			for _, l := range tt.lines {
				p.push(l)
			}
			got := []string{}
			for i := 0; i < p.limit; i++ {
				if l := p.line(i); l != "" {
					got = append(got, l)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpriteCueReturnsToIdle(t *testing.T) {
	enemy := &stubBattler{id: 1, team: core.TeamEnemy, hp: 10}
	set := NewSpriteset(testConfig(), nil, []core.Battler{enemy})

	found, ok := set.FindBattler(enemy)
	if !ok {
		t.Fatal("sprite not found")
	}
	sprite := found.(*BattlerSprite)
	sprite.SetAnimationState(core.CueDamage)

	for i := 0; i < 2; i++ {
		set.Update()
		if sprite.Cue() != core.CueDamage {
			t.Fatalf("frame %d: cue = %s, want Damage", i+1, sprite.Cue())
		}
	}
	set.Update()
	if sprite.Cue() != core.CueIdle {
		t.Fatalf("cue = %s, want Idle after %d frames", sprite.Cue(), 3)
	}
}

func TestSpriteDeadCueIsFinal(t *testing.T) {
	enemy := &stubBattler{id: 1, team: core.TeamEnemy, hp: 0}
	set := NewSpriteset(testConfig(), nil, []core.Battler{enemy})
	found, _ := set.FindBattler(enemy)
	sprite := found.(*BattlerSprite)

	if sprite.Cue() != core.CueDead {
		t.Fatalf("cue = %s, want Dead for a battler spawned dead", sprite.Cue())
	}
	sprite.SetAnimationState(core.CueDamage)
	for i := 0; i < 10; i++ {
		set.Update()
	}
	if sprite.Cue() != core.CueDead {
		t.Fatalf("cue = %s, want Dead", sprite.Cue())
	}
}

func TestSpriteAppearance(t *testing.T) {
	cfg := testConfig()
	ally := &BattlerSprite{battler: &stubBattler{team: core.TeamAlly, hp: 5}, cue: core.CueIdle, cueFrames: 4}
	enemy := &BattlerSprite{battler: &stubBattler{team: core.TeamEnemy, hp: 5}, cue: core.CueIdle, cueFrames: 4}

	if ally.fillColor(cfg.UI.Colors) != cfg.UI.Colors.Ally || enemy.fillColor(cfg.UI.Colors) != cfg.UI.Colors.Enemy {
		t.Fatal("idle sprites should use team colors")
	}

	ally.SetAnimationState(core.CueSkillUse)
	enemy.SetAnimationState(core.CueSkillUse)
	if ally.offsetX() >= 0 || enemy.offsetX() <= 0 {
		t.Fatalf("skill use offsets = %v, %v; allies step left and enemies step right", ally.offsetX(), enemy.offsetX())
	}

	enemy.SetAnimationState(core.CueDamage)
	if enemy.fillColor(cfg.UI.Colors) != cfg.UI.Colors.Damage {
		t.Fatal("damaged sprite should flash")
	}
}

func TestFindBattlerUnknown(t *testing.T) {
	set := NewSpriteset(testConfig(), nil, nil)
	if _, ok := set.FindBattler(&stubBattler{id: 9}); ok {
		t.Fatal("unknown battler should not have a sprite")
	}
	if _, ok := set.FindBattler(nil); ok {
		t.Fatal("nil battler should not have a sprite")
	}
}

func TestPingShape(t *testing.T) {
	r0, a0 := pingShape(0)
	r1, a1 := pingShape(1)
	if r0 != 0 || r1 != pingMaxRadius {
		t.Fatalf("radius = %v..%v, want 0..%v", r0, r1, pingMaxRadius)
	}
	if a0 <= a1 {
		t.Fatalf("alpha should fade: %v -> %v", a0, a1)
	}
}

func TestSEPlayerSkipsMissingFiles(t *testing.T) {
	assets := fstest.MapFS{
		"se/dodge.wav": {Data: []byte("RIFF")},
	}
	sounds := map[string]string{
		"dodge":       "se/dodge.wav",
		"enemy_death": "se/enemy_death.wav",
	}
	p := NewSEPlayer(resource.NewLoader(nil), assets, sounds, 1, zerolog.Nop())

	if _, ok := p.ids["dodge"]; !ok {
		t.Fatal("existing sound was not registered")
	}
	if _, ok := p.ids["enemy_death"]; ok {
		t.Fatal("missing sound was registered")
	}
	p.PlaySE("enemy_death")
	p.PlaySE("enemy_death")
	if !p.missing["enemy_death"] {
		t.Fatal("missing sound was not remembered")
	}
}
