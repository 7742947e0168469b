package data

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"rpgbattle-ebiten/core"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ConditionMessages はステートメッセージのロケール別の上書きです。
type ConditionMessages struct {
	Actor string `yaml:"actor"`
	Enemy string `yaml:"enemy"`
}

type localeFile struct {
	Locale     string                                 `yaml:"locale"`
	Terms      core.Terms                             `yaml:"terms"`
	Conditions map[core.ConditionID]ConditionMessages `yaml:"conditions"`
}

// Locale は1言語分のバトル用語です。
type Locale struct {
	Tag        language.Tag
	Terms      core.Terms
	Conditions map[core.ConditionID]ConditionMessages

	printer *message.Printer
}

// NewLocale は tag の書式で数値を整形する Locale を返します。
func NewLocale(tag language.Tag, terms core.Terms) *Locale {
	return &Locale{
		Tag:     tag,
		Terms:   terms,
		printer: message.NewPrinter(tag),
	}
}

// Number は数値をロケールの書式で文字列にします。
func (l *Locale) Number(n int) string {
	return l.printer.Sprint(n)
}

// Catalog は読み込まれた全ロケールです。
type Catalog struct {
	locales map[language.Tag]*Locale
	tags    []language.Tag
	matcher language.Matcher
}

// LoadLocales は fsys の locales/<tag>/terms.yaml をすべて読み込みます。
func LoadLocales(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, path.Join(LocalesDir, "*", "terms.yaml"))
	if err != nil {
		return nil, fmt.Errorf("ロケールファイルの検索に失敗しました: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("ロケールファイルが見つかりません")
	}
	sort.Strings(paths)

	catalog := &Catalog{locales: make(map[language.Tag]*Locale, len(paths))}
	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("%s のパースに失敗しました: %w", p, err)
		}
		dir := path.Base(path.Dir(p))
		if file.Locale != dir {
			return nil, fmt.Errorf("%s のロケール %q がディレクトリ名と一致しません", p, file.Locale)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("%s のロケールタグが不正です: %w", p, err)
		}
		if _, dup := catalog.locales[tag]; dup {
			return nil, fmt.Errorf("ロケール %s が重複しています", tag)
		}
		locale := NewLocale(tag, file.Terms)
		locale.Conditions = file.Conditions
		catalog.locales[tag] = locale
		catalog.tags = append(catalog.tags, tag)
	}
	catalog.matcher = language.NewMatcher(catalog.tags)
	return catalog, nil
}

// Tags は読み込まれたロケールを返します。
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Match は要求されたロケールに最も近いロケールを返します。
// 一致するものが無い場合は最初に読み込まれたロケールにフォールバックします。
func (c *Catalog) Match(requested string) *Locale {
	want, err := language.Parse(requested)
	if err != nil {
		return c.locales[c.tags[0]]
	}
	_, index, _ := c.matcher.Match(want)
	return c.locales[c.tags[index]]
}
