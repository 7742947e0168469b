package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"math/rand"

	"rpgbattle-ebiten/data"
	"rpgbattle-ebiten/history"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	resource "github.com/quasilyte/ebitengine-resource"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"
)

// フォントのリソースIDです。
const (
	_ resource.FontID = iota
	FontMessage
	FontButton
)

const (
	buttonImageSize   = 30
	buttonImageBorder = 10
)

// SharedResources はシーン間で共有されるリソースを保持します。
type SharedResources struct {
	Config  data.Config
	Assets  fs.FS
	DB      *data.Database
	Catalog *data.Catalog
	Locale  *data.Locale
	Logger  zerolog.Logger
	Rand    *rand.Rand

	Loader      *resource.Loader
	Sounds      *SEPlayer
	Font        text.Face
	ButtonFont  text.Face
	ButtonImage *widget.ButtonImage

	// History は省略可能です。nil の場合、戦闘は記録されません。
	History *history.Store
}

// NewSharedResources はアセットからフォントと効果音を読み込み、SharedResources を返します。
func NewSharedResources(
	cfg data.Config,
	assets fs.FS,
	db *data.Database,
	catalog *data.Catalog,
	audioContext *audio.Context,
	logger zerolog.Logger,
) (*SharedResources, error) {
	loader := NewLoader(audioContext, assets)

	font, buttonFont, err := LoadFaces(loader, assets, cfg.UI)
	if err != nil {
		return nil, err
	}

	buttonImage := ebiten.NewImage(buttonImageSize, buttonImageSize)
	buttonImage.Fill(color.RGBA{R: 0x40, G: 0x40, B: 0x60, A: 0xFF})
	hoverImage := ebiten.NewImage(buttonImageSize, buttonImageSize)
	hoverImage.Fill(color.RGBA{R: 0x58, G: 0x58, B: 0x88, A: 0xFF})

	locale := catalog.Match(cfg.Game.Locale)
	db.Localize(locale)

	return &SharedResources{
		Config:     cfg,
		Assets:     assets,
		DB:         db,
		Catalog:    catalog,
		Locale:     locale,
		Logger:     logger,
		Rand:       rand.New(rand.NewSource(cfg.Game.RandomSeed)),
		Loader:     loader,
		Sounds:     NewSEPlayer(loader, assets, db.Sounds, cfg.UI.Audio.Volume, logger),
		Font:       font,
		ButtonFont: buttonFont,
		ButtonImage: &widget.ButtonImage{
			Idle:    image.NewNineSliceSimple(buttonImage, buttonImageBorder, buttonImageBorder),
			Hover:   image.NewNineSliceSimple(hoverImage, buttonImageBorder, buttonImageBorder),
			Pressed: image.NewNineSliceSimple(hoverImage, buttonImageBorder, buttonImageBorder),
		},
	}, nil
}

// NewLoader はアセットのファイルシステムから読み込むリソースローダーを返します。
func NewLoader(audioContext *audio.Context, assets fs.FS) *resource.Loader {
	loader := resource.NewLoader(audioContext)
	loader.OpenAssetFunc = func(path string) io.ReadCloser {
		f, err := assets.Open(path)
		if err != nil {
			// 登録前に存在を確認しているため、ここに来るのはアセットが壊れている場合だけです。
			panic(err)
		}
		return f
	}
	return loader
}

// LoadFaces はメッセージ用とボタン用のフォントを返します。
// 設定されたフォントファイルがアセットに無ければ組み込みの Go フォントを使います。
func LoadFaces(loader *resource.Loader, assets fs.FS, cfg data.UIConfig) (text.Face, text.Face, error) {
	size, buttonSize := cfg.Font.Size, cfg.Font.ButtonSize
	if size <= 0 {
		size = 10
	}
	if buttonSize <= 0 {
		buttonSize = size
	}

	if cfg.Font.Path != "" {
		if _, err := fs.Stat(assets, cfg.Font.Path); err == nil {
			loader.FontRegistry.Assign(map[resource.FontID]resource.FontInfo{
				FontMessage: {Path: cfg.Font.Path, Size: size},
				FontButton:  {Path: cfg.Font.Path, Size: buttonSize},
			})
			message := text.NewGoXFace(loader.LoadFont(FontMessage).Face)
			button := text.NewGoXFace(loader.LoadFont(FontButton).Face)
			return message, button, nil
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, fmt.Errorf("組み込みフォントの読み込みに失敗しました: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: float64(size)},
		&text.GoTextFace{Source: source, Size: float64(buttonSize)},
		nil
}
