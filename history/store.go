// Package history は戦闘の結果を SQLite に記録します。
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rpgbattle-ebiten/core"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// MemoryPath はプロセス内だけで使う一時データベースを開くためのパスです。
const MemoryPath = ":memory:"

//go:embed schema.sql
var schema string

// Store は戦闘履歴のデータベースです。
type Store struct {
	sqlDB  *sql.DB
	logger zerolog.Logger
}

// Open はデータベースを開き、スキーマを適用します。
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("履歴データベースのパスが指定されていません")
	}
	dsn := MemoryPath
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("履歴データベースを開けませんでした: %w", err)
	}
	// :memory: は接続ごとに別のデータベースになるため、接続を1本に固定します。
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("履歴データベースに接続できませんでした: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("履歴データベースのスキーマ適用に失敗しました: %w", err)
	}
	return &Store{sqlDB: sqlDB, logger: logger.With().Str("component", "history").Logger()}, nil
}

// Close はデータベースを閉じます。
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// BeginBattle は新しい戦闘を登録し、その戦闘の効果を記録する Recorder を返します。
func (s *Store) BeginBattle(ctx context.Context, troop string, seed int64) (*Recorder, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO battles (troop, seed, started_at) VALUES (?, ?, ?)`,
		troop, seed, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("戦闘の登録に失敗しました: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("戦闘IDの取得に失敗しました: %w", err)
	}
	return &Recorder{store: s, battleID: id}, nil
}

// Recorder は1回の戦闘の効果を記録します。core.EffectObserver を実装します。
type Recorder struct {
	store    *Store
	battleID int64
	seq      int
	err      error
}

var _ core.EffectObserver = (*Recorder)(nil)

// BattleID は記録先の戦闘IDを返します。
func (r *Recorder) BattleID() int64 {
	return r.battleID
}

// ObserveEffect は効果を1件記録します。
// 戦闘の進行を止めないよう、失敗はログに残して Err で参照できるようにします。
func (r *Recorder) ObserveEffect(record core.EffectRecord) {
	r.seq++
	var hp any
	if record.Hit {
		hp = record.HP
	}
	_, err := r.store.sqlDB.Exec(
		`INSERT INTO effects (battle_id, seq, source, source_team, target, target_team, skill_id, hp, conditions, killed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.battleID,
		r.seq,
		record.Source,
		record.SourceTeam.String(),
		record.Target,
		record.TargetTeam.String(),
		record.SkillID,
		hp,
		joinConditions(record.Conditions),
		record.Killed,
	)
	if err != nil {
		r.store.logger.Error().Err(err).Int64("battle", r.battleID).Int("seq", r.seq).Msg("効果の記録に失敗しました")
		if r.err == nil {
			r.err = fmt.Errorf("効果 %d の記録に失敗しました: %w", r.seq, err)
		}
	}
}

// Err は最初に発生した記録エラーを返します。
func (r *Recorder) Err() error {
	return r.err
}

// Finish は勝敗とラウンド数を記録します。
func (r *Recorder) Finish(ctx context.Context, winner core.TeamType, rounds int) error {
	_, err := r.store.sqlDB.ExecContext(ctx,
		`UPDATE battles SET finished_at = ?, winner = ?, rounds = ? WHERE id = ?`,
		time.Now().UTC().UnixMilli(), winner.String(), rounds, r.battleID,
	)
	if err != nil {
		return fmt.Errorf("戦闘 %d の終了の記録に失敗しました: %w", r.battleID, err)
	}
	return nil
}

// SourceSummary は行動者ごとの集計です。
type SourceSummary struct {
	Source  string
	Team    string
	Effects int
	Hits    int
	Damage  int
	Kills   int
}

// Summary は戦闘の効果を行動者ごとに集計し、与えたダメージの多い順に返します。
func (s *Store) Summary(ctx context.Context, battleID int64) ([]SourceSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT source, source_team, COUNT(*), COUNT(hp), COALESCE(SUM(hp), 0), SUM(killed)
		   FROM effects
		  WHERE battle_id = ?
		  GROUP BY source, source_team
		  ORDER BY COALESCE(SUM(hp), 0) DESC, source ASC`,
		battleID,
	)
	if err != nil {
		return nil, fmt.Errorf("戦闘 %d の集計に失敗しました: %w", battleID, err)
	}
	defer rows.Close()

	var summaries []SourceSummary
	for rows.Next() {
		var sum SourceSummary
		if err := rows.Scan(&sum.Source, &sum.Team, &sum.Effects, &sum.Hits, &sum.Damage, &sum.Kills); err != nil {
			return nil, fmt.Errorf("集計結果の読み込みに失敗しました: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("集計結果の読み込みに失敗しました: %w", err)
	}
	return summaries, nil
}

// BattleRecord は記録された戦闘1件です。
type BattleRecord struct {
	ID        int64
	Troop     string
	Seed      int64
	StartedAt time.Time
	Winner    string
	Rounds    int
	Finished  bool
}

// Battles は新しい順に最大 limit 件の戦闘を返します。
func (s *Store) Battles(ctx context.Context, limit int) ([]BattleRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, troop, seed, started_at, COALESCE(winner, ''), rounds, finished_at IS NOT NULL
		   FROM battles
		  ORDER BY id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("戦闘一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		var startedAt int64
		if err := rows.Scan(&rec.ID, &rec.Troop, &rec.Seed, &startedAt, &rec.Winner, &rec.Rounds, &rec.Finished); err != nil {
			return nil, fmt.Errorf("戦闘一覧の読み込みに失敗しました: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("戦闘一覧の読み込みに失敗しました: %w", err)
	}
	return records, nil
}

func joinConditions(ids []core.ConditionID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}
