// Command simulate は画面を出さずに戦闘を自動で進め、メッセージと集計を標準出力に書き出します。
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"

	"rpgbattle-ebiten/battle"
	"rpgbattle-ebiten/core"
	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/history"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	Troop    string `env:"SIM_TROOP" envDefault:"Slimes"`
	Battles  int    `env:"SIM_BATTLES" envDefault:"1"`
	MaxTicks int    `env:"SIM_MAX_TICKS" envDefault:"1000000"`
	Quiet    bool   `env:"SIM_QUIET"`
}

func main() {
	cfg, err := data.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}
	var opts options
	if err := env.Parse(&opts); err != nil {
		log.Fatal().Err(err).Msg("環境変数のパースに失敗しました")
	}
	logger := data.NewLogger(cfg.Game.LogLevel, os.Stderr)

	if err := run(context.Background(), cfg, data.AssetFS(&cfg), opts, os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("シミュレーションに失敗しました")
	}
}

func run(ctx context.Context, cfg data.Config, assets fs.FS, opts options, out io.Writer, logger zerolog.Logger) error {
	db, err := data.LoadDatabase(assets)
	if err != nil {
		return err
	}
	catalog, err := data.LoadLocales(assets)
	if err != nil {
		return err
	}
	locale := catalog.Match(cfg.Game.Locale)
	db.Localize(locale)

	troop, ok := db.Troop(opts.Troop)
	if !ok {
		return fmt.Errorf("トループ %q が見つかりません", opts.Troop)
	}

	path := cfg.Game.HistoryDB
	if path == "" {
		path = history.MemoryPath
	}
	store, err := history.Open(path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	wins := map[core.TeamType]int{}
	for i := 0; i < opts.Battles; i++ {
		seed := cfg.Game.RandomSeed + int64(i)
		winner, err := simulate(ctx, cfg, db, locale, troop, store, seed, opts, out, logger)
		if err != nil {
			return fmt.Errorf("戦闘 %d (seed %d): %w", i+1, seed, err)
		}
		wins[winner]++
	}
	fmt.Fprintf(out, "== %s: ally %d / enemy %d\n", troop.Name, wins[core.TeamAlly], wins[core.TeamEnemy])
	return nil
}

func simulate(
	ctx context.Context,
	cfg data.Config,
	db *data.Database,
	locale *data.Locale,
	troop *data.Troop,
	store *history.Store,
	seed int64,
	opts options,
	out io.Writer,
	logger zerolog.Logger,
) (core.TeamType, error) {
	rec, err := store.BeginBattle(ctx, troop.Name, seed)
	if err != nil {
		return 0, err
	}
	b, err := battle.New(battle.Options{
		Config:   cfg.Battle,
		DB:       db,
		Locale:   locale,
		Troop:    troop,
		Rand:     rand.New(rand.NewSource(seed)),
		Logger:   logger.With().Int64("seed", seed).Logger(),
		Observer: rec,
	})
	if err != nil {
		return 0, err
	}

	for tick := 0; !b.Over(); tick++ {
		if tick >= opts.MaxTicks {
			return 0, fmt.Errorf("%d ティック以内に決着しませんでした", opts.MaxTicks)
		}
		if _, err := b.Update(); err != nil {
			return 0, err
		}
		if !opts.Quiet {
			printMessages(out, b.Messages.Drain())
		}
	}
	if err := rec.Err(); err != nil {
		return 0, err
	}

	winner, _ := b.Winner()
	if err := rec.Finish(ctx, winner, b.Round()); err != nil {
		return 0, err
	}
	summaries, err := store.Summary(ctx, rec.BattleID())
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(out, "-- battle %d: %s wins in %d rounds\n", rec.BattleID(), winner, b.Round())
	for _, s := range summaries {
		fmt.Fprintf(out, "   %-10s %-5s hits %d/%d  damage %s  kills %d\n",
			s.Source, s.Team, s.Hits, s.Effects, locale.Number(s.Damage), s.Kills)
	}
	return winner, nil
}

func printMessages(out io.Writer, lines []string) {
	for _, line := range lines {
		if line == data.MessageDivider {
			fmt.Fprintln(out)
			continue
		}
		fmt.Fprintln(out, line)
	}
}
