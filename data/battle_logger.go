package data

import (
	"github.com/rs/zerolog"
)

// BattleLogger は戦闘中の詳細な計算過程などをデバッグ目的で出力するためのインターフェースです。
// プレイヤーに表示されるメッセージは MessageQueue が担当します。
type BattleLogger interface {
	LogHitCheck(attackerName, targetName string, rate, roll int)
	LogDamage(attackerName, targetName string, base, final int, critical bool)
	LogRetarget(sourceName, fromName, toName string)
	LogFormulaError(skillName string, err error)
	LogAnimation(sourceName, animationName string, frames int)
	LogActionFinished(sourceName string, targets int)
	LogPhase(sourceName, from, to string)
}

// BattleLoggerImpl は BattleLogger インターフェースの zerolog による実装です。
type BattleLoggerImpl struct {
	logger zerolog.Logger
}

// NewBattleLogger は新しい BattleLoggerImpl のインスタンスを生成します。
func NewBattleLogger(logger zerolog.Logger) BattleLogger {
	return &BattleLoggerImpl{logger: logger.With().Str("component", "battle").Logger()}
}

// NopBattleLogger は何も出力しない BattleLogger を返します。
func NopBattleLogger() BattleLogger {
	return NewBattleLogger(zerolog.Nop())
}

// LogHitCheck は命中判定のロールをログに出力します。
func (l *BattleLoggerImpl) LogHitCheck(attackerName, targetName string, rate, roll int) {
	l.logger.Debug().
		Str("attacker", attackerName).
		Str("target", targetName).
		Int("rate", rate).
		Int("roll", roll).
		Bool("hit", roll < rate).
		Msg("命中判定")
}

// LogDamage はダメージ計算の結果をログに出力します。
func (l *BattleLoggerImpl) LogDamage(attackerName, targetName string, base, final int, critical bool) {
	l.logger.Debug().
		Str("attacker", attackerName).
		Str("target", targetName).
		Int("base", base).
		Int("final", final).
		Bool("critical", critical).
		Msg("ダメージ計算")
}

// LogRetarget は戦闘不能のターゲットから別のターゲットに切り替えたことをログに出力します。
func (l *BattleLoggerImpl) LogRetarget(sourceName, fromName, toName string) {
	l.logger.Debug().
		Str("source", sourceName).
		Str("from", fromName).
		Str("to", toName).
		Msg("ターゲットを再選択しました")
}

// LogFormulaError は計算式の評価に失敗したことをログに出力します。
func (l *BattleLoggerImpl) LogFormulaError(skillName string, err error) {
	l.logger.Warn().Err(err).Str("skill", skillName).Msg("ダメージ計算式の評価に失敗しました。既定の計算式を使用します")
}

// LogAnimation は戦闘アニメーションの開始をログに出力します。
func (l *BattleLoggerImpl) LogAnimation(sourceName, animationName string, frames int) {
	l.logger.Debug().
		Str("source", sourceName).
		Str("animation", animationName).
		Int("frames", frames).
		Msg("アニメーション再生")
}

// LogActionFinished はアクションの完了をログに出力します。
func (l *BattleLoggerImpl) LogActionFinished(sourceName string, targets int) {
	l.logger.Debug().
		Str("source", sourceName).
		Int("targets", targets).
		Msg("アクション完了")
}

// LogPhase はアクションのフェーズ遷移をログに出力します。
func (l *BattleLoggerImpl) LogPhase(sourceName, from, to string) {
	l.logger.Trace().
		Str("source", sourceName).
		Str("from", from).
		Str("to", to).
		Msg("フェーズ遷移")
}
