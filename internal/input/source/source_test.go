package source

import (
	"testing"

	"inputrig/internal/input/bind"
)

var testNames = NameTable{
	Axes:    []string{"LeftX", "LeftY"},
	Buttons: []string{"A", "B", "Start"},
}

func TestParseGenericControllerKey(t *testing.T) {
	tests := []struct {
		device string
		sub    string
		want   bind.Key
		wantOK bool
	}{
		{"SDL-0", "A", MakeGenericControllerButtonKey(bind.SourceSDL, 0, 0), true},
		{"SDL-0", "Start", MakeGenericControllerButtonKey(bind.SourceSDL, 0, 2), true},
		{"SDL-1", "B", MakeGenericControllerButtonKey(bind.SourceSDL, 1, 1), true},
		{"SDL-0", "+LeftX", MakeGenericControllerAxisKey(bind.SourceSDL, 0, 0), true},
		{"SDL-0", "-LeftY", func() bind.Key {
			k := MakeGenericControllerAxisKey(bind.SourceSDL, 0, 1)
			k.Negative = true
			return k
		}(), true},
		{"SDL-0", "LeftX", bind.Key{}, false},   // axes need a sign prefix
		{"SDL-0", "+A", bind.Key{}, false},      // buttons take no sign
		{"SDL-0", "a", bind.Key{}, false},       // names are case sensitive
		{"SDL-0", "", bind.Key{}, false},
		{"SDL-x", "A", bind.Key{}, false},
		{"SDL0", "A", bind.Key{}, false},
		{"XInput-0", "A", bind.Key{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseGenericControllerKey(bind.SourceSDL, testNames, tt.device, tt.sub)
		if ok != tt.wantOK {
			t.Errorf("ParseGenericControllerKey(%q, %q) ok = %v, want %v", tt.device, tt.sub, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseGenericControllerKey(%q, %q) = %v, want %v", tt.device, tt.sub, got, tt.want)
		}
	}
}

func TestConvertGenericControllerKeyToString(t *testing.T) {
	axisNeg := MakeGenericControllerAxisKey(bind.SourceSDL, 0, 1)
	axisNeg.Negative = true

	tests := []struct {
		key  bind.Key
		want string
	}{
		{MakeGenericControllerButtonKey(bind.SourceSDL, 0, 0), "SDL-0/A"},
		{MakeGenericControllerButtonKey(bind.SourceSDL, 1, 2), "SDL-1/Start"},
		{MakeGenericControllerAxisKey(bind.SourceSDL, 0, 0), "SDL-0/+LeftX"},
		{axisNeg, "SDL-0/-LeftY"},
		{MakeGenericControllerButtonKey(bind.SourceSDL, 0, 99), ""},
		{MakeGenericControllerAxisKey(bind.SourceSDL, 0, 99), ""},
		{bind.Key{SourceType: bind.SourceSDL}, ""},
	}

	for _, tt := range tests {
		if got := ConvertGenericControllerKeyToString(tt.key, testNames); got != tt.want {
			t.Errorf("ConvertGenericControllerKeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGenericControllerRoundTrip(t *testing.T) {
	subs := []string{"A", "B", "Start", "+LeftX", "-LeftX", "+LeftY", "-LeftY"}
	for _, sub := range subs {
		key, ok := ParseGenericControllerKey(bind.SourceSDL, testNames, "SDL-0", sub)
		if !ok {
			t.Errorf("parse %q failed", sub)
			continue
		}
		if got := ConvertGenericControllerKeyToString(key, testNames); got != "SDL-0/"+sub {
			t.Errorf("round trip of %q = %q", sub, got)
		}
	}
}
