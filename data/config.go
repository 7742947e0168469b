package data

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/rs/zerolog/log"
)

// Configは、ゲーム全体のコンフィグレーションを保持します。
// game_settings.json からデシリアライズされた後、環境変数で上書きされます。
type Config struct {
	Battle BattleConfig `json:"Battle"`
	UI     UIConfig     `json:"UI"`

	// --- Non-JSON fields ---
	// 以下のフィールドはJSONファイルからロードされず、環境変数から設定されます。
	Game GameConfig `json:"-"`
}

// BattleConfig は戦闘の進行とダメージ計算の設定です。
type BattleConfig struct {
	// WaitFrames はフェーズ間の待機フレーム数です。
	WaitFrames int `json:"WaitFrames" env:"BATTLE_WAIT_FRAMES"`
	// 全体スキルのアニメーションは画面中央の固定座標に表示されます。
	PartyAnimationX int `json:"PartyAnimationX"`
	PartyAnimationY int `json:"PartyAnimationY"`

	HitRate            int    `json:"HitRate"`
	Variance           int    `json:"Variance"`
	CriticalChance     int    `json:"CriticalChance"`
	CriticalMultiplier int    `json:"CriticalMultiplier"`
	DefaultFormula     string `json:"DefaultFormula"`
}

// GameConfig はゲームプレイ固有の設定を保持します。
type GameConfig struct {
	RandomSeed int64  `env:"BATTLE_SEED"`
	Locale     string `env:"BATTLE_LOCALE" envDefault:"en-US"`
	HistoryDB  string `env:"BATTLE_HISTORY_DB"`
	LogLevel   string `env:"BATTLE_LOG_LEVEL" envDefault:"info"`
	AssetDir   string `env:"BATTLE_ASSET_DIR"`
	Watch      bool   `env:"BATTLE_WATCH"`
}

// UIConfig は game_settings.json の "UI" セクションとマッピングされます。
type UIConfig struct {
	Screen struct {
		Width  int `json:"Width"`
		Height int `json:"Height"`
		Scale  int `json:"Scale"`
	} `json:"Screen"`
	Battlefield struct {
		SpriteWidth  float32 `json:"SpriteWidth"`
		SpriteHeight float32 `json:"SpriteHeight"`
		CueFrames    int     `json:"CueFrames"`
	} `json:"Battlefield"`
	MessageWindow struct {
		Height int `json:"Height"`
		Lines  int `json:"Lines"`
	} `json:"MessageWindow"`
	// Font.Path が空、またはアセットに無い場合は組み込みフォントを使います。
	Font struct {
		Path       string `json:"Path"`
		Size       int    `json:"Size"`
		ButtonSize int    `json:"ButtonSize"`
	} `json:"Font"`
	Audio struct {
		SampleRate int     `json:"SampleRate"`
		Volume     float64 `json:"Volume"`
	} `json:"Audio"`

	// ColorsフィールドはカスタムのUnmarshalJSONメソッドによってパースされます。
	Colors ParsedColors `json:"Colors"`
}

// ParsedColors はパース済みの色情報を保持します。
type ParsedColors struct {
	White      color.Color
	Gray       color.Color
	Ally       color.Color
	Enemy      color.Color
	Damage     color.Color
	Dead       color.Color
	Background color.Color
	Window     color.Color
}

// UnmarshalJSON は ParsedColors 型のカスタムデシリアライザです。
// JSONの "Colors" オブジェクト（キーが色名、値が16進数文字列のマップ）を
// ParsedColors 構造体の各 color.Color フィールドに変換します。
func (p *ParsedColors) UnmarshalJSON(data []byte) error {
	var raw struct {
		White      string `json:"White"`
		Gray       string `json:"Gray"`
		Ally       string `json:"Ally"`
		Enemy      string `json:"Enemy"`
		Damage     string `json:"Damage"`
		Dead       string `json:"Dead"`
		Background string `json:"Background"`
		Window     string `json:"Window"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("色データのJSONアンマーシャルに失敗しました: %w", err)
	}

	p.White = ParseHexColor(raw.White)
	p.Gray = ParseHexColor(raw.Gray)
	p.Ally = ParseHexColor(raw.Ally)
	p.Enemy = ParseHexColor(raw.Enemy)
	p.Damage = ParseHexColor(raw.Damage)
	p.Dead = ParseHexColor(raw.Dead)
	p.Background = ParseHexColor(raw.Background)
	p.Window = ParseHexColor(raw.Window)

	return nil
}

// ParseHexColor は16進数文字列からcolor.Colorをパースします。
// アニメーション素材の色指定にも使われます。
func ParseHexColor(s string) color.Color {
	var r, g, b uint8
	// 期待する長さ(6)でなければデフォルト色を返す
	if len(s) != 6 {
		log.Warn().Str("value", s).Msg("無効な16進数カラーコードです。デフォルト色を使用します。")
		return color.White
	}
	_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Msg("16進数カラーコードのパースに失敗しました")
		return color.White
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
