package crypto

import (
	"strings"
	"testing"
)

func TestETag(t *testing.T) {
	a := ETag([]byte("%PDF-1.3 one"))
	b := ETag([]byte("%PDF-1.3 one"))
	c := ETag([]byte("%PDF-1.3 two"))
	if a != b {
		t.Errorf("equal input gave %s and %s", a, b)
	}
	if a == c {
		t.Errorf("different input gave the same tag %s", a)
	}
	if len(a) != 34 || !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("malformed tag %s", a)
	}
}

func TestMatchesETag(t *testing.T) {
	tag := ETag([]byte("doc"))
	cases := map[string]bool{
		"":                         false,
		"*":                        true,
		tag:                        true,
		"W/" + tag:                 true,
		`"abc", ` + tag:            true,
		`"abc",` + tag + `, "def"`: true,
		`"abc", "def"`:             false,
	}
	for header, want := range cases {
		if got := MatchesETag(header, tag); got != want {
			t.Errorf("MatchesETag(%q) = %t, want %t", header, got, want)
		}
	}
}

func TestRequestETag(t *testing.T) {
	type key struct {
		IDs []string `json:"ids"`
		X   float64  `json:"x"`
	}
	a, err := RequestETag(key{IDs: []string{"b1", "b2"}, X: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RequestETag(key{IDs: []string{"b1", "b2"}, X: 1})
	c, _ := RequestETag(key{IDs: []string{"b2", "b1"}, X: 1})
	if a != b {
		t.Errorf("equal keys gave %s and %s", a, b)
	}
	if a == c {
		t.Errorf("reordered ids gave the same tag %s", a)
	}
	if _, err := RequestETag(make(chan int)); err == nil {
		t.Error("expected an error for an unencodable key")
	}
}
