package history

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"rpgbattle-ebiten/core"

	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, MemoryPath)

	rec, err := store.BeginBattle(ctx, "Slimes", 42)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	effects := []core.EffectRecord{
		{Source: "Alex", SourceTeam: core.TeamAlly, Target: "Slime A", TargetTeam: core.TeamEnemy, HP: 12, Hit: true},
		{Source: "Alex", SourceTeam: core.TeamAlly, Target: "Slime A", TargetTeam: core.TeamEnemy, HP: 20, Hit: true, Conditions: []core.ConditionID{core.ConditionDeath}, Killed: true},
		{Source: "Slime B", SourceTeam: core.TeamEnemy, Target: "Alex", TargetTeam: core.TeamAlly},
		{Source: "Brian", SourceTeam: core.TeamAlly, Target: "Bat", TargetTeam: core.TeamEnemy, SkillID: 3, HP: 0, Hit: true, Conditions: []core.ConditionID{2}},
	}
	for _, e := range effects {
		rec.ObserveEffect(e)
	}
	if err := rec.Err(); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := rec.Finish(ctx, core.TeamAlly, 3); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err := store.Summary(ctx, rec.BattleID())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := []SourceSummary{
		{Source: "Alex", Team: "ally", Effects: 2, Hits: 2, Damage: 32, Kills: 1},
		{Source: "Brian", Team: "ally", Effects: 1, Hits: 1, Damage: 0, Kills: 0},
		{Source: "Slime B", Team: "enemy", Effects: 1, Hits: 0, Damage: 0, Kills: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
}

func TestBattles(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "history.db"))

	first, err := store.BeginBattle(ctx, "Slimes", 1)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := first.Finish(ctx, core.TeamEnemy, 5); err != nil {
		t.Fatalf("finish: %v", err)
	}
	second, err := store.BeginBattle(ctx, "Slimes", 2)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	battles, err := store.Battles(ctx, 10)
	if err != nil {
		t.Fatalf("battles: %v", err)
	}
	if len(battles) != 2 {
		t.Fatalf("battles = %d, want 2", len(battles))
	}
	if battles[0].ID != second.BattleID() || battles[0].Finished {
		t.Errorf("latest battle = %+v, want unfinished battle %d", battles[0], second.BattleID())
	}
	if battles[1].Winner != "enemy" || battles[1].Rounds != 5 || !battles[1].Finished {
		t.Errorf("first battle = %+v", battles[1])
	}
}

func TestSummaryIsScopedToBattle(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, MemoryPath)

	a, err := store.BeginBattle(ctx, "Slimes", 1)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	b, err := store.BeginBattle(ctx, "Slimes", 2)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	a.ObserveEffect(core.EffectRecord{Source: "Alex", Target: "Bat", HP: 5, Hit: true})
	b.ObserveEffect(core.EffectRecord{Source: "Brian", Target: "Bat", HP: 7, Hit: true})

	got, err := store.Summary(ctx, b.BattleID())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(got) != 1 || got[0].Source != "Brian" || got[0].Damage != 7 {
		t.Fatalf("summary = %+v", got)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  ", zerolog.Nop()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
