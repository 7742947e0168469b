package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"rpgbattle-ebiten/data"

	"github.com/rs/zerolog"
)

func testConfig(t *testing.T) data.Config {
	t.Helper()
	var cfg data.Config
	if err := data.LoadSettings(data.EmbeddedAssets(), &cfg); err != nil {
		t.Fatalf("settings: %v", err)
	}
	cfg.Battle.WaitFrames = 1
	cfg.Game.Locale = "en-US"
	cfg.Game.RandomSeed = 3
	return cfg
}

func TestRunPrintsMessagesAndSummary(t *testing.T) {
	var out bytes.Buffer
	opts := options{Troop: "Slimes", Battles: 2, MaxTicks: 1000000}
	if err := run(context.Background(), testConfig(t), data.EmbeddedAssets(), opts, &out, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, " attacks!") {
		t.Errorf("output has no battle messages:\n%s", got)
	}
	if n := strings.Count(got, "-- battle "); n != 2 {
		t.Errorf("battle summaries = %d, want 2", n)
	}
	if !strings.Contains(got, "== Slimes: ally ") {
		t.Errorf("output has no total line:\n%s", got)
	}
}

func TestRunQuiet(t *testing.T) {
	var out bytes.Buffer
	opts := options{Troop: "Slimes", Battles: 1, MaxTicks: 1000000, Quiet: true}
	if err := run(context.Background(), testConfig(t), data.EmbeddedAssets(), opts, &out, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), " attacks!") {
		t.Fatal("quiet run printed battle messages")
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{name: "unknown troop", opts: options{Troop: "Dragons", Battles: 1, MaxTicks: 10}},
		{name: "tick limit", opts: options{Troop: "Slimes", Battles: 1, MaxTicks: 3, Quiet: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), testConfig(t), data.EmbeddedAssets(), tt.opts, &out, zerolog.Nop()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
