package data

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"rpgbattle-ebiten/core"
)

func TestEmbeddedSettings(t *testing.T) {
	var cfg Config
	if err := LoadSettings(EmbeddedAssets(), &cfg); err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Battle.WaitFrames != core.DefaultWaitFrames {
		t.Errorf("WaitFrames = %d, want %d", cfg.Battle.WaitFrames, core.DefaultWaitFrames)
	}
	if cfg.Battle.PartyAnimationX != 160 || cfg.Battle.PartyAnimationY != 120 {
		t.Errorf("party animation position = (%d, %d)", cfg.Battle.PartyAnimationX, cfg.Battle.PartyAnimationY)
	}
	if cfg.UI.Colors.Ally == nil {
		t.Error("colors were not parsed")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.Battle.WaitFrames = 30
		cfg.Battle.HitRate = 90
		cfg.Battle.CriticalMultiplier = 2
		cfg.UI.MessageWindow.Lines = 4
		return cfg
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "zero wait", mutate: func(c *Config) { c.Battle.WaitFrames = 0 }},
		{name: "hit rate above 100", mutate: func(c *Config) { c.Battle.HitRate = 101 }},
		{name: "negative hit rate", mutate: func(c *Config) { c.Battle.HitRate = -1 }},
		{name: "critical multiplier below 1", mutate: func(c *Config) { c.Battle.CriticalMultiplier = 0 }},
		{name: "no message lines", mutate: func(c *Config) { c.UI.MessageWindow.Lines = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("BATTLE_ASSET_DIR", "")
	t.Setenv("BATTLE_WAIT_FRAMES", "12")
	t.Setenv("BATTLE_LOCALE", "ja-JP")
	t.Setenv("BATTLE_SEED", "99")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Battle.WaitFrames != 12 {
		t.Errorf("WaitFrames = %d, want 12", cfg.Battle.WaitFrames)
	}
	if cfg.Game.Locale != "ja-JP" || cfg.Game.RandomSeed != 99 {
		t.Errorf("game config = %+v", cfg.Game)
	}
	if cfg.Game.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.Game.LogLevel)
	}
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	t.Setenv("BATTLE_ASSET_DIR", "")
	t.Setenv("BATTLE_WAIT_FRAMES", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEmbeddedDatabase(t *testing.T) {
	db, err := LoadDatabase(EmbeddedAssets())
	if err != nil {
		t.Fatalf("load database: %v", err)
	}
	if got := db.TroopNames(); !reflect.DeepEqual(got, []string{"Slimes"}) {
		t.Errorf("troops = %v", got)
	}
	if s, ok := db.Skill(2); !ok || !s.TargetsParty {
		t.Errorf("skill 2 = %+v, %v; want party skill", s, ok)
	}
	if _, ok := db.Animation(0); ok {
		t.Error("animation 0 should mean no animation")
	}
	if c, ok := db.Condition(core.ConditionDeath); !ok || c.Priority != 100 {
		t.Errorf("death condition = %+v, %v", c, ok)
	}
	if db.System.Sounds.EnemyDeath == "" {
		t.Error("system sounds not loaded")
	}
}

func TestParseDatabaseErrors(t *testing.T) {
	const death = "conditions:\n  - {id: 1, name: Death}\n"
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "missing death", raw: "conditions:\n  - {id: 2, name: Poison}\n", want: "戦闘不能"},
		{name: "duplicate condition", raw: "conditions:\n  - {id: 1, name: Death}\n  - {id: 1, name: Again}\n", want: "重複"},
		{name: "animation without frames", raw: death + "animations:\n  - {id: 1, name: Slash, frames: 0}\n", want: "フレーム数"},
		{name: "animation id zero", raw: death + "animations:\n  - {id: 0, name: Slash, frames: 3}\n", want: "アニメーションID"},
		{name: "skill with unknown condition", raw: death + "skills:\n  - {id: 1, name: Venom, conditions: [9]}\n", want: "未定義のステート"},
		{name: "troop without enemies", raw: death + "troops:\n  - {name: Empty, allies: [{name: Alex, hp: 1}]}\n", want: "1人以上"},
		{name: "battler with unknown skill", raw: death + "troops:\n  - {name: T, allies: [{name: Alex, hp: 1, skills: [5]}], enemies: [{name: Slime, hp: 1}]}\n", want: "未定義のスキル"},
		{name: "broken yaml", raw: "conditions: [", want: "YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDatabase([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog, err := LoadLocales(EmbeddedAssets())
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	if got := len(catalog.Tags()); got != 2 {
		t.Fatalf("locales = %d, want 2", got)
	}

	tests := []struct {
		requested string
		want      string
	}{
		{requested: "en-US", want: "en-US"},
		{requested: "ja", want: "ja-JP"},
		{requested: "fr-FR", want: "en-US"},
		{requested: "not a tag!", want: "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			if got := catalog.Match(tt.requested).Tag.String(); got != tt.want {
				t.Fatalf("Match(%q) = %s, want %s", tt.requested, got, tt.want)
			}
		})
	}

	if got := catalog.Match("en-US").Number(1234567); got != "1,234,567" {
		t.Errorf("Number = %q, want 1,234,567", got)
	}
}

func TestLoadLocalesRejectsMismatchedDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US/terms.yaml": {Data: []byte("locale: ja-JP\nterms:\n  attacking: x\n")},
	}
	if _, err := LoadLocales(fsys); err == nil {
		t.Fatal("expected error for mismatched locale")
	}
	if _, err := LoadLocales(fstest.MapFS{}); err == nil {
		t.Fatal("expected error when no locale exists")
	}
}

func TestLocalizeOverridesConditionMessages(t *testing.T) {
	fsys := EmbeddedAssets()
	db, err := LoadDatabase(fsys)
	if err != nil {
		t.Fatalf("load database: %v", err)
	}
	catalog, err := LoadLocales(fsys)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	ja := catalog.Match("ja-JP")
	db.Localize(ja)

	death, _ := db.Condition(core.ConditionDeath)
	if death.MessageEnemy != ja.Conditions[core.ConditionDeath].Enemy {
		t.Fatalf("enemy death message = %q, want %q", death.MessageEnemy, ja.Conditions[core.ConditionDeath].Enemy)
	}
}

func TestDatabaseSwap(t *testing.T) {
	db, err := ParseDatabase([]byte("conditions:\n  - {id: 1, name: Death, priority: 1}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	next, err := ParseDatabase([]byte("conditions:\n  - {id: 1, name: Death, priority: 7}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	held := db
	db.Swap(next)
	if c, _ := held.Condition(core.ConditionDeath); c.Priority != 7 {
		t.Fatalf("priority = %d, want 7 after swap", c.Priority)
	}
}

func TestMessageQueue(t *testing.T) {
	q := NewMessageQueue()
	q.Push(MessageDivider)
	q.Push("Alex attacks!")

	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}
	lines := q.Lines()
	lines[0] = "mutated"
	if q.Lines()[0] != MessageDivider {
		t.Fatal("Lines must return a copy")
	}
	if got := q.Drain(); !reflect.DeepEqual(got, []string{MessageDivider, "Alex attacks!"}) {
		t.Fatalf("drain = %q", got)
	}
	if q.Len() != 0 {
		t.Fatal("queue not empty after drain")
	}
	q.Push("x")
	q.Clear()
	if q.Len() != 0 {
		t.Fatal("queue not empty after clear")
	}
}

func TestIsReloadable(t *testing.T) {
	tests := map[string]bool{
		"assets/database.yaml":          true,
		"assets/locales/ja-JP/terms.YML": true,
		"assets/game_settings.json":     false,
		"assets/se/dodge.wav":           false,
	}
	for path, want := range tests {
		if got := IsReloadable(path); got != want {
			t.Errorf("IsReloadable(%q) = %v, want %v", path, got, want)
		}
	}
}
