package algorithm

import (
	"fmt"
	"sort"

	"rpgbattle-ebiten/core"

	"github.com/d5/tengo/v2"
)

// formulaResult は計算式スクリプト内で結果を受け取る変数名です。
const formulaResult = "damage"

// Formulas はスキルのダメージ計算式を tengo スクリプトとしてコンパイルし、キャッシュします。
// 計算式では a_*（使用者）と b_*（対象）の能力値、および power を参照できます。
type Formulas struct {
	compiled map[string]*tengo.Compiled
}

// NewFormulas は空のキャッシュを返します。
func NewFormulas() *Formulas {
	return &Formulas{compiled: make(map[string]*tengo.Compiled)}
}

// FormulaVariables は計算式に渡す変数を組み立てます。
func FormulaVariables(source, target core.Battler, power int) map[string]any {
	return map[string]any{
		"a_atk": source.Attack(),
		"a_def": source.Defense(),
		"a_spi": source.Spirit(),
		"a_agi": source.Agility(),
		"a_hp":  source.HP(),
		"b_atk": target.Attack(),
		"b_def": target.Defense(),
		"b_spi": target.Spirit(),
		"b_agi": target.Agility(),
		"b_hp":  target.HP(),
		"power": power,
	}
}

// Eval は計算式を評価し、結果を整数で返します。
func (f *Formulas) Eval(expr string, vars map[string]any) (int, error) {
	compiled, err := f.compile(expr, vars)
	if err != nil {
		return 0, err
	}
	for name, value := range vars {
		if err := compiled.Set(name, value); err != nil {
			return 0, fmt.Errorf("変数 %s の設定に失敗しました: %w", name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return 0, fmt.Errorf("計算式 %q の実行に失敗しました: %w", expr, err)
	}
	v := compiled.Get(formulaResult)
	switch v.ValueType() {
	case "int", "float":
		return v.Int(), nil
	default:
		return 0, fmt.Errorf("計算式 %q の結果が数値ではありません: %s", expr, v.ValueType())
	}
}

func (f *Formulas) compile(expr string, vars map[string]any) (*tengo.Compiled, error) {
	if c, ok := f.compiled[expr]; ok {
		return c, nil
	}

	script := tengo.NewScript([]byte(formulaResult + " := " + expr))
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := script.Add(name, 0); err != nil {
			return nil, fmt.Errorf("変数 %s の登録に失敗しました: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("計算式 %q のコンパイルに失敗しました: %w", expr, err)
	}
	f.compiled[expr] = compiled
	return compiled, nil
}
