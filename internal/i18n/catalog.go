package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

type Language struct {
	Code string
	Name string
}

var available = []Language{
	{Code: "en", Name: "English"},
	{Code: "ru", Name: "Русский"},
}

var tables = map[string]map[string]string{
	"en": english,
	"ru": russian,
}

func Available() []Language {
	out := make([]Language, len(available))
	copy(out, available)
	return out
}

func Supported(code string) bool {
	_, ok := tables[Normalize(code)]
	return ok
}

// Normalize reduces a language code to its lowercase base, so "ru-RU"
// and "RU" both become "ru". Unparsable input is only trimmed and lowercased.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToLower(trimmed)
	}
	base, _ := tag.Base()
	return base.String()
}

// Catalog is the active translation table. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	code  string
	table map[string]string
}

// NewCatalog starts in English and then applies code.
func NewCatalog(code string) *Catalog {
	c := &Catalog{code: "en", table: english}
	c.SetLanguage(code)
	return c
}

// SetLanguage switches tables. An unsupported code leaves the current
// table in place and reports false.
func (c *Catalog) SetLanguage(code string) bool {
	norm := Normalize(code)
	table, ok := tables[norm]
	if !ok {
		return false
	}
	c.mu.Lock()
	c.code = norm
	c.table = table
	c.mu.Unlock()
	return true
}

func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code
}

// Translate falls back to the key itself when no entry exists.
func (c *Catalog) Translate(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.table[key]; ok && v != "" {
		return v
	}
	return key
}

// Repeats returns the plural word for count in the active language.
func (c *Catalog) Repeats(count int) string {
	return c.Translate(RepeatsKey(count, c.Language()))
}
