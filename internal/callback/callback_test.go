package callback

import (
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	actions := []Action{
		Page{ChatID: 1, Target: 0},
		Page{ChatID: -100123456, Target: 9},
		Stop{ChatID: 42},
		Download{ChatID: 7, Index: 99},
		Download{ChatID: -1, Index: 0},
	}

	for _, a := range actions {
		wire := Encode(a)
		got, err := Parse(wire)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", wire, err)
		}
		if got != a {
			t.Errorf("round trip %q = %#v, want %#v", wire, got, a)
		}
	}
}

func TestEncodeWireFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		action Action
		want   string
	}{
		{Page{ChatID: 5, Target: 2}, "page|5|2"},
		{Stop{ChatID: 5}, "stop|5|0"},
		{Download{ChatID: 5, Index: 17}, "download|5|17"},
	}
	for _, c := range cases {
		if got := Encode(c.action); got != c.want {
			t.Errorf("Encode(%#v) = %q, want %q", c.action, got, c.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"page",
		"page|5",
		"page|5|2|extra",
		"jump|5|2",
		"page|notanumber|2",
		"page|5|notanumber",
		"|||",
	}
	for _, data := range bad {
		if _, err := Parse(data); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", data, err)
		}
	}
}
