package i18n

import "testing"

func TestLocalizer(t *testing.T) {
	l := New("en")

	tests := []struct {
		lang string
		key  string
		args []any
		want string
	}{
		{"en", "tool_polygon", nil, "Polygon"},
		{"en", "msg_tool_changed", []any{"line"}, "→ Tool: line"},
		{"en", "coord_readout", []any{1.5, -2.0}, "x: 1.50, y: -2.00"},
		{"ru", "tool_polygon", nil, "Многоугольник"},
		{"ru", "msg_function_error", []any{"sin(", "bad"}, "✗ Ошибка при добавлении функции 'sin(': bad"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			if !l.SetLanguage(tt.lang) {
				t.Fatalf("SetLanguage(%q) = false", tt.lang)
			}
			if got := l.Get(tt.key, tt.args...); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLocalizer_Fallbacks(t *testing.T) {
	l := New("de")
	if l.Language() != "en" {
		t.Errorf("language = %q, want en", l.Language())
	}
	if l.SetLanguage("de") {
		t.Error("unknown language accepted")
	}
	if got := l.Get("no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key = %q", got)
	}
	if l.Next() != "ru" {
		t.Errorf("Next() = %q, want ru", l.Next())
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range english {
		if _, ok := russian[key]; !ok {
			t.Errorf("ru lacks %q", key)
		}
	}
	for key := range russian {
		if _, ok := english[key]; !ok {
			t.Errorf("en lacks %q", key)
		}
	}
}
