package data

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger はコンソール出力用のロガーを生成します。
// level が不正な場合は info として扱います。
func NewLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
