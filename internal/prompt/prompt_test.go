package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLineTrimsAnswer(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  /games/lw  \r\nsecond\n"), &out)

	first, err := p.Line("path?")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if first != "/games/lw" {
		t.Fatalf("expected trimmed answer, got %q", first)
	}
	second, err := p.Line("again?")
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if second != "second" {
		t.Fatalf("expected second line, got %q", second)
	}
	if out.String() != "path?\nagain?\n" {
		t.Fatalf("unexpected prompt output %q", out.String())
	}
}

func TestLineReturnsUnterminatedLastLine(t *testing.T) {
	p := New(strings.NewReader("last"), &bytes.Buffer{})
	got, err := p.Line("q")
	if err != nil || got != "last" {
		t.Fatalf("expected %q, got %q (%v)", "last", got, err)
	}
	if _, err := p.Line("q"); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput after input ends, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "\n", want: true},
		{input: "y\n", want: true},
		{input: " Y \n", want: true},
		{input: "n\n", want: false},
		{input: "yes\n", want: false},
		{input: "", want: false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		got, err := New(strings.NewReader(tc.input), &out).Confirm("Proceed?")
		if err != nil {
			t.Fatalf("input %q: Confirm failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("input %q: expected %v, got %v", tc.input, tc.want, got)
		}
		if out.String() != "Proceed? [Y/n]\n" {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}
