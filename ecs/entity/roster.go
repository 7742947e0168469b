package entity

import (
	"fmt"
	"math/rand"
	"sort"

	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/ecs/component"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var battlerQuery = donburi.NewQuery(filter.Contains(
	component.ProfileComponent,
	component.VitalsComponent,
	component.StatsComponent,
	component.ConditionsComponent,
	component.BattlePositionComponent,
))

// Roster は戦闘ワールド内のバトラーと、チームごとのパーティをまとめます。
type Roster struct {
	world  donburi.World
	db     *data.Database
	rand   *rand.Rand
	nextID int

	parties map[core.TeamType]*Party
}

// NewRoster は空の Roster を生成します。
func NewRoster(world donburi.World, db *data.Database, r *rand.Rand) *Roster {
	roster := &Roster{
		world:  world,
		db:     db,
		rand:   r,
		nextID: 1,
	}
	roster.parties = map[core.TeamType]*Party{
		core.TeamAlly:  {team: core.TeamAlly, roster: roster},
		core.TeamEnemy: {team: core.TeamEnemy, roster: roster},
	}
	return roster
}

// World は戦闘ワールドを返します。
func (r *Roster) World() donburi.World {
	return r.world
}

// Party はチームのパーティを返します。
func (r *Roster) Party(team core.TeamType) *Party {
	return r.parties[team]
}

// SpawnTroop はトループ定義から味方と敵のエンティティを生成します。
func (r *Roster) SpawnTroop(troop *data.Troop) error {
	for i, def := range troop.Allies {
		if _, err := r.Spawn(def, core.TeamAlly, i); err != nil {
			return fmt.Errorf("味方 %q の生成に失敗しました: %w", def.Name, err)
		}
	}
	for i, def := range troop.Enemies {
		if _, err := r.Spawn(def, core.TeamEnemy, i); err != nil {
			return fmt.Errorf("敵 %q の生成に失敗しました: %w", def.Name, err)
		}
	}
	return nil
}

// Spawn はバトラー1人分のエンティティを生成します。
func (r *Roster) Spawn(def data.BattlerDefinition, team core.TeamType, index int) (*Battler, error) {
	if def.HP <= 0 {
		return nil, fmt.Errorf("最大HPは1以上である必要があります: %d", def.HP)
	}
	if def.AttackAnimation != 0 {
		if _, ok := r.db.Animation(def.AttackAnimation); !ok {
			return nil, fmt.Errorf("未定義のアニメーションです: %d", def.AttackAnimation)
		}
	}

	entry := r.world.Entry(r.world.Create(
		component.ProfileComponent,
		component.VitalsComponent,
		component.StatsComponent,
		component.ConditionsComponent,
		component.BattlePositionComponent,
		component.SkillsComponent,
	))
	component.ProfileComponent.SetValue(entry, component.Profile{
		ID:    r.nextID,
		Name:  def.Name,
		Team:  team,
		Index: index,
	})
	r.nextID++
	component.VitalsComponent.SetValue(entry, component.Vitals{
		HP:    def.HP,
		MaxHP: def.HP,
		SP:    def.SP,
		MaxSP: def.SP,
	})
	component.StatsComponent.SetValue(entry, component.Stats{
		Attack:          def.Attack,
		Defense:         def.Defense,
		Spirit:          def.Spirit,
		Agility:         def.Agility,
		AttackAnimation: def.AttackAnimation,
		AttacksParty:    def.AttacksParty,
	})
	component.ConditionsComponent.SetValue(entry, component.Conditions{})
	component.BattlePositionComponent.SetValue(entry, component.BattlePosition{X: def.X, Y: def.Y})
	component.SkillsComponent.SetValue(entry, component.Skills{IDs: append([]int(nil), def.Skills...)})

	return r.wrap(entry), nil
}

// All は全バトラーを味方、敵の順に並び順で返します。
func (r *Roster) All() []*Battler {
	var all []*Battler
	battlerQuery.Each(r.world, func(entry *donburi.Entry) {
		all = append(all, r.wrap(entry))
	})
	sortBattlers(all)
	return all
}

// Find はIDからバトラーを探します。
func (r *Roster) Find(id int) (*Battler, bool) {
	for _, b := range r.All() {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

func (r *Roster) wrap(entry *donburi.Entry) *Battler {
	return &Battler{entry: entry, roster: r}
}

func sortBattlers(bs []*Battler) {
	sort.SliceStable(bs, func(i, j int) bool {
		pi := component.ProfileComponent.Get(bs[i].entry)
		pj := component.ProfileComponent.Get(bs[j].entry)
		if pi.Team != pj.Team {
			return pi.Team < pj.Team
		}
		return pi.Index < pj.Index
	})
}

// Party は同じチームのバトラー集合です。core.Party を実装します。
type Party struct {
	team   core.TeamType
	roster *Roster
}

var _ core.Party = (*Party)(nil)

// Team はパーティのチームを返します。
func (p *Party) Team() core.TeamType {
	return p.team
}

// Members は生死を問わず全メンバーを並び順で返します。
func (p *Party) Members() []*Battler {
	var members []*Battler
	for _, b := range p.roster.All() {
		if b.Type() == p.team {
			members = append(members, b)
		}
	}
	return members
}

// AliveBattlers は生存しているメンバーを並び順で返します。
func (p *Party) AliveBattlers() []core.Battler {
	var alive []core.Battler
	for _, b := range p.Members() {
		if !b.IsDead() {
			alive = append(alive, b)
		}
	}
	return alive
}

// RandomAliveBattler は生存メンバーから一様ランダムに1人を返します。全滅時は nil です。
func (p *Party) RandomAliveBattler() core.Battler {
	alive := p.AliveBattlers()
	if len(alive) == 0 {
		return nil
	}
	return alive[p.roster.rand.Intn(len(alive))]
}

// IsDefeated は全員が戦闘不能かどうかを返します。
func (p *Party) IsDefeated() bool {
	return len(p.AliveBattlers()) == 0
}
