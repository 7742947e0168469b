package data

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Reloader は変更されたデータベースとロケールを読み直し、既存の値に反映します。
// 参照側は同じポインタを持ち続けるため、戦闘中でも次のアクションから新しい内容が使われます。
type Reloader struct {
	Assets     fs.FS
	DB         *Database
	Locale     *Locale
	LocaleName string
}

// Reload は changed に応じてデータベースかロケールを読み直します。
// 読み込みに失敗した場合は既存の内容を変更しません。
func (r *Reloader) Reload(changed string) error {
	if filepath.Base(changed) == DatabasePath {
		next, err := LoadDatabase(r.Assets)
		if err != nil {
			return err
		}
		next.Localize(r.Locale)
		r.DB.Swap(next)
		return nil
	}

	catalog, err := LoadLocales(r.Assets)
	if err != nil {
		return err
	}
	locale := catalog.Match(r.LocaleName)
	if locale.Tag != r.Locale.Tag {
		return fmt.Errorf("ロケール %s が %s に変わったため再読み込みできません", r.Locale.Tag, locale.Tag)
	}
	*r.Locale = *locale
	r.DB.Localize(r.Locale)
	return nil
}
