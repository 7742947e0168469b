// Package battle は戦闘全体の進行を扱います。
// 行動の順番決めは簡易なもので、アクションの実行は action パッケージに任せます。
package battle

import (
	"rpgbattle-ebiten/battle/action"
)

// Runner はアクションを先頭から1件ずつ、1ティックに1回進めます。
type Runner struct {
	queue   []action.Action
	started bool
}

// NewRunner は空の Runner を返します。
func NewRunner() *Runner {
	return &Runner{}
}

// Enqueue はアクションを末尾に追加します。
func (r *Runner) Enqueue(actions ...action.Action) {
	r.queue = append(r.queue, actions...)
}

// Current は実行中のアクションを返します。キューが空なら nil です。
func (r *Runner) Current() action.Action {
	if len(r.queue) == 0 {
		return nil
	}
	return r.queue[0]
}

// Len はキューに残っているアクション数を返します。
func (r *Runner) Len() int {
	return len(r.queue)
}

// Idle はキューが空かどうかを返します。
func (r *Runner) Idle() bool {
	return len(r.queue) == 0
}

// Update は先頭のアクションを1ティック進めます。
// started は先頭のアクションがこのティックで初めて実行されたこと、finished は完了してキューから外されたことを示します。
func (r *Runner) Update() (current action.Action, started, finished bool) {
	current = r.Current()
	if current == nil {
		return nil, false, false
	}
	if !r.started {
		r.started = true
		started = true
	}
	if current.Execute() {
		r.drop()
		finished = true
	}
	return current, started, finished
}

// drop は先頭のアクションを外します。
func (r *Runner) drop() {
	r.queue[0] = nil
	r.queue = r.queue[1:]
	r.started = false
}

// Clear は残りのアクションを破棄します。
func (r *Runner) Clear() {
	r.queue = nil
	r.started = false
}
