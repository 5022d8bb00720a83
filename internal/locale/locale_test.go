package locale

import "testing"

func TestParseSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Code
		ok   bool
	}{
		{"english", English, true},
		{"English", English, true},
		{"  FRENCH ", French, true},
		{"français", French, true},
		{"Français", French, true},
		{"español", Spanish, true},
		{"spanish", Spanish, true},
		{"TWI", Twi, true},
		{"never gonna give you up", "", false},
		{"", "", false},
		{"germann", "", false},
	}
	for _, c := range cases {
		got, ok := ParseSelection(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseSelection(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestPrefStoreDefault(t *testing.T) {
	t.Parallel()

	s := NewPrefStore(English)
	if got := s.Get(1); got != English {
		t.Errorf("Get on empty store = %q, want english", got)
	}

	s.Set(1, French)
	if got := s.Get(1); got != French {
		t.Errorf("Get after Set = %q, want french", got)
	}
	// Other users keep the default.
	if got := s.Get(2); got != English {
		t.Errorf("Get for other user = %q, want english", got)
	}
}

func TestPrefStoreRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := NewPrefStore(English)
	s.Set(1, Code("klingon"))
	if got := s.Get(1); got != English {
		t.Errorf("Get after invalid Set = %q, want english", got)
	}
}

func TestLocalizerFollowsUserAcrossChats(t *testing.T) {
	t.Parallel()

	prefs := NewPrefStore(English)
	l := NewLocalizer(prefs, English)

	prefs.Set(99, French)

	// Language is keyed by user, not by chat, so the same user gets French
	// everywhere they act.
	if got := l.Text(99, KeyNoResults, nil); got != "Aucun résultat trouvé." {
		t.Errorf("french no_results = %q", got)
	}
	if got := l.Text(100, KeyNoResults, nil); got != "No results found." {
		t.Errorf("english no_results = %q", got)
	}
}

func TestLocalizerPlaceholders(t *testing.T) {
	t.Parallel()

	l := NewLocalizer(NewPrefStore(English), English)
	got := l.Text(1, KeyDownloading, Args{"title": "Song A"})
	if got != "Downloading Song A..." {
		t.Errorf("Text = %q", got)
	}
}

func TestLocalizerFallbackChain(t *testing.T) {
	t.Parallel()

	prefs := NewPrefStore(Twi)
	l := NewLocalizer(prefs, Twi)

	// Twi has no search_error template; falls back to English.
	got := l.Text(1, KeySearchError, Args{"error": "boom"})
	if got != "Search error: boom" {
		t.Errorf("fallback Text = %q", got)
	}

	// A key missing everywhere renders as the key itself.
	if got := l.Text(1, "nonexistent_key", nil); got != "nonexistent_key" {
		t.Errorf("missing key Text = %q", got)
	}
}
