package data

import (
	"fmt"
	"io/fs"
	"sort"

	"rpgbattle-ebiten/core"

	"gopkg.in/yaml.v3"
)

// BattlerDefinition はバトラー1人分の初期パラメータです。
type BattlerDefinition struct {
	Name            string `yaml:"name"`
	HP              int    `yaml:"hp"`
	SP              int    `yaml:"sp"`
	Attack          int    `yaml:"atk"`
	Defense         int    `yaml:"def"`
	Spirit          int    `yaml:"spi"`
	Agility         int    `yaml:"agi"`
	AttackAnimation int    `yaml:"attack_animation"`
	AttacksParty    bool   `yaml:"attacks_party"`
	Skills          []int  `yaml:"skills"`
	X               int    `yaml:"x"`
	Y               int    `yaml:"y"`
}

// Troop は1戦闘分の編成です。
type Troop struct {
	Name    string              `yaml:"name"`
	Allies  []BattlerDefinition `yaml:"allies"`
	Enemies []BattlerDefinition `yaml:"enemies"`
}

// Database は戦闘で参照される静的データ一式です。
// database.yaml からデシリアライズされます。
type Database struct {
	System struct {
		Sounds core.SystemSounds `yaml:"sounds"`
	} `yaml:"system"`
	// Sounds は効果音名とファイルパスの対応です。
	Sounds     map[string]string     `yaml:"sounds"`
	Conditions []core.Condition      `yaml:"conditions"`
	Skills     []core.Skill          `yaml:"skills"`
	Animations []core.AnimationAsset `yaml:"animations"`
	Troops     []Troop               `yaml:"troops"`

	conditions map[core.ConditionID]*core.Condition
	skills     map[int]*core.Skill
	animations map[int]*core.AnimationAsset
	troops     map[string]*Troop
}

// LoadDatabase は fsys から database.yaml を読み込みます。
func LoadDatabase(fsys fs.FS) (*Database, error) {
	raw, err := fs.ReadFile(fsys, DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", DatabasePath, err)
	}
	return ParseDatabase(raw)
}

// ParseDatabase はYAMLデータから Database を構築し、索引を作成します。
func ParseDatabase(raw []byte) (*Database, error) {
	var db Database
	if err := yaml.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("データベースのYAMLパースに失敗しました: %w", err)
	}
	if err := db.index(); err != nil {
		return nil, err
	}
	return &db, nil
}

func (db *Database) index() error {
	db.conditions = make(map[core.ConditionID]*core.Condition, len(db.Conditions))
	for i := range db.Conditions {
		c := &db.Conditions[i]
		if _, dup := db.conditions[c.ID]; dup {
			return fmt.Errorf("ステートIDが重複しています: %d", c.ID)
		}
		db.conditions[c.ID] = c
	}
	if _, ok := db.conditions[core.ConditionDeath]; !ok {
		return fmt.Errorf("戦闘不能ステート(ID %d)が定義されていません", core.ConditionDeath)
	}

	db.animations = make(map[int]*core.AnimationAsset, len(db.Animations))
	for i := range db.Animations {
		a := &db.Animations[i]
		if a.ID <= 0 {
			return fmt.Errorf("アニメーションIDは1以上である必要があります: %q", a.Name)
		}
		if a.Frames < 1 {
			return fmt.Errorf("アニメーション %q のフレーム数が不正です: %d", a.Name, a.Frames)
		}
		db.animations[a.ID] = a
	}

	db.skills = make(map[int]*core.Skill, len(db.Skills))
	for i := range db.Skills {
		s := &db.Skills[i]
		if _, dup := db.skills[s.ID]; dup {
			return fmt.Errorf("スキルIDが重複しています: %d", s.ID)
		}
		for _, id := range s.Conditions {
			if _, ok := db.conditions[id]; !ok {
				return fmt.Errorf("スキル %q が未定義のステート %d を参照しています", s.Name, id)
			}
		}
		db.skills[s.ID] = s
	}

	db.troops = make(map[string]*Troop, len(db.Troops))
	for i := range db.Troops {
		t := &db.Troops[i]
		if len(t.Allies) == 0 || len(t.Enemies) == 0 {
			return fmt.Errorf("トループ %q には味方と敵がそれぞれ1人以上必要です", t.Name)
		}
		for _, def := range append(append([]BattlerDefinition{}, t.Allies...), t.Enemies...) {
			for _, id := range def.Skills {
				if _, ok := db.skills[id]; !ok {
					return fmt.Errorf("%q が未定義のスキル %d を参照しています", def.Name, id)
				}
			}
		}
		db.troops[t.Name] = t
	}
	return nil
}

// Condition はIDからステート定義を取得します。
func (db *Database) Condition(id core.ConditionID) (*core.Condition, bool) {
	c, ok := db.conditions[id]
	return c, ok
}

// Skill はIDからスキル定義を取得します。
func (db *Database) Skill(id int) (*core.Skill, bool) {
	s, ok := db.skills[id]
	return s, ok
}

// Animation はIDからアニメーション素材を取得します。ID 0 は「なし」を意味します。
func (db *Database) Animation(id int) (*core.AnimationAsset, bool) {
	if id == 0 {
		return nil, false
	}
	a, ok := db.animations[id]
	return a, ok
}

// Troop は名前からトループを取得します。
func (db *Database) Troop(name string) (*Troop, bool) {
	t, ok := db.troops[name]
	return t, ok
}

// TroopNames は定義済みトループ名を昇順で返します。
func (db *Database) TroopNames() []string {
	names := make([]string, 0, len(db.troops))
	for name := range db.troops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Localize はロケールのステートメッセージでデータベースの文言を上書きします。
func (db *Database) Localize(locale *Locale) {
	for id, msg := range locale.Conditions {
		c, ok := db.conditions[id]
		if !ok {
			continue
		}
		if msg.Actor != "" {
			c.MessageActor = msg.Actor
		}
		if msg.Enemy != "" {
			c.MessageEnemy = msg.Enemy
		}
	}
}

// Swap はホットリロードで読み直したデータベースの内容に置き換えます。
// 既存のポインタを保持している参照側にも新しい内容が見えるように、値ごとコピーします。
func (db *Database) Swap(next *Database) {
	*db = *next
}
