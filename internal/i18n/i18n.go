// internal/i18n/i18n.go
//
// Package i18n holds the console message catalog.
// Messages are embedded YAML files parsed into a go-i18n bundle.
package i18n

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tamzrod/kbconv/internal/logging"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	langs      []string
)

func loadBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	langs = parseCatalogs(bundle, localeFS, "locales")
}

// parseCatalogs adds every catalog file under dir to b and returns the
// sorted language names. Files that fail to load are logged and skipped.
func parseCatalogs(b *i18n.Bundle, fsys fs.FS, dir string) []string {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		logging.L.Warn("locale directory unreadable", "dir", dir, "err", err)
		return nil
	}

	var out []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := path.Join(dir, f.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			logging.L.Warn("locale file unreadable", "file", name, "err", err)
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			logging.L.Warn("locale file skipped", "file", name, "err", err)
			continue
		}
		out = append(out, strings.TrimSuffix(f.Name(), path.Ext(f.Name())))
	}
	sort.Strings(out)
	return out
}

// Languages lists the embedded catalogs.
func Languages() []string {
	bundleOnce.Do(loadBundle)
	return append([]string(nil), langs...)
}

// Supported reports whether lang names an embedded catalog.
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, l := range Languages() {
		if l == base.String() {
			return true
		}
	}
	return false
}

// Catalog localizes message ids for one language.
type Catalog struct {
	lang      string
	localizer *i18n.Localizer
}

// New returns a catalog for lang. Unknown languages fall back to English.
func New(lang string) *Catalog {
	bundleOnce.Do(loadBundle)
	if !Supported(lang) {
		lang = language.English.String()
	}
	return &Catalog{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang),
	}
}

func (c *Catalog) Lang() string {
	return c.lang
}

// T renders message id with template data.
// A missing id renders as the id itself.
func (c *Catalog) T(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
