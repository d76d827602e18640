package templates

import "testing"

func TestLoadAndRender(t *testing.T) {
	tests := []struct {
		lang string
		key  string
		data any
		want string
	}{
		{lang: "en", key: KeyLoadFailed, want: "Failed to load requests"},
		{lang: "", key: KeyApproveFailed, want: "Approval failed"},
		{lang: "EN", key: KeyShowing, data: map[string]int{"From": 7, "To": 7, "Total": 7}, want: "Showing 7 - 7 of 7"},
		{lang: "ru", key: KeyShowing, data: map[string]int{"From": 1, "To": 6, "Total": 7}, want: "Показано 1 - 6 из 7"},
		{lang: "de", key: KeyLoadFailed, want: "Failed to load requests"},
	}
	for _, tt := range tests {
		bundle, err := Load(tt.lang)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", tt.lang, err)
		}
		got, err := bundle.Render(tt.key, tt.data)
		if err != nil {
			t.Fatalf("Render(%q) error = %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("Load(%q).Render(%q) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestBundlesShareKeys(t *testing.T) {
	en, err := Load(LangEN)
	if err != nil {
		t.Fatal(err)
	}
	ru, err := Load(LangRU)
	if err != nil {
		t.Fatal(err)
	}
	for key := range en.templates {
		if _, ok := ru.templates[key]; !ok {
			t.Errorf("ru bundle missing key %s", key)
		}
	}
	if len(en.templates) != len(ru.templates) {
		t.Errorf("bundle sizes differ: en=%d ru=%d", len(en.templates), len(ru.templates))
	}
}

func TestText(t *testing.T) {
	if got := Text(nil, KeyLoadFailed, nil, "fallback"); got != "fallback" {
		t.Errorf("Text(nil) = %q, want fallback", got)
	}
	bundle, _ := Load(LangEN)
	if got := Text(bundle, "missing.key", nil, "fallback"); got != "fallback" {
		t.Errorf("Text(missing) = %q, want fallback", got)
	}
	if got := Text(bundle, KeyApproveFailed, nil, "fallback"); got != "Approval failed" {
		t.Errorf("Text(approve) = %q, want Approval failed", got)
	}
}
