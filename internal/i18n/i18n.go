package i18n

import (
	"sort"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ============================================================
// Localizer
// ============================================================

// Localizer выдаёт строки интерфейса на текущем языке. Создаётся явно
// и передаётся во фронтенд; глобального состояния нет.
type Localizer struct {
	mu      sync.RWMutex
	cat     *catalog.Builder
	tags    map[string]language.Tag
	known   map[string]bool
	current string
	printer *message.Printer
}

// New создаёт локализатор. Неизвестный язык заменяется на en.
func New(lang string) *Localizer {
	l := &Localizer{
		cat:   catalog.NewBuilder(catalog.Fallback(language.English)),
		tags:  map[string]language.Tag{"en": language.English, "ru": language.Russian},
		known: make(map[string]bool),
	}
	l.load(language.English, english)
	l.load(language.Russian, russian)

	if !l.SetLanguage(lang) {
		l.SetLanguage("en")
	}
	return l
}

func (l *Localizer) load(tag language.Tag, table map[string]string) {
	for key, msg := range table {
		// ошибки возможны только для некорректного tag
		_ = l.cat.SetString(tag, key, msg)
		l.known[key] = true
	}
}

// SetLanguage переключает язык. Возвращает false для неизвестного кода.
func (l *Localizer) SetLanguage(lang string) bool {
	tag, ok := l.tags[lang]
	if !ok {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = lang
	l.printer = message.NewPrinter(tag, message.Catalog(l.cat))
	return true
}

func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Languages возвращает доступные коды языков.
func (l *Localizer) Languages() []string {
	out := make([]string, 0, len(l.tags))
	for code := range l.tags {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Next возвращает язык, следующий за текущим (для кнопки переключения).
func (l *Localizer) Next() string {
	langs := l.Languages()
	cur := l.Language()
	for i, code := range langs {
		if code == cur {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

// Get возвращает строку по ключу, подставляя args. Для неизвестного
// ключа возвращается сам ключ.
func (l *Localizer) Get(key string, args ...any) string {
	if !l.known[key] {
		return key
	}
	l.mu.RLock()
	p := l.printer
	l.mu.RUnlock()
	return p.Sprintf(key, args...)
}
