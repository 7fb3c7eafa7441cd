package main

import (
	"testing"

	"minion-profit/internal/model"
)

func TestCoins(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45210, "-45,210"},
	}
	for _, tt := range tests {
		if got := coins(tt.in); got != tt.want {
			t.Errorf("coins(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindow(t *testing.T) {
	tests := map[int]string{
		3600:     "1h",
		86400:    "1d",
		10713600: "124d",
		5400:     "5400s",
		7200:     "2h",
	}
	for in, want := range tests {
		if got := window(in); got != want {
			t.Errorf("window(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestItems(t *testing.T) {
	var r model.Result
	if got := items(r); got != "-" {
		t.Errorf("empty items = %q", got)
	}
	r.Item2 = "Flycatcher"
	if got := items(r); got != "Flycatcher" {
		t.Errorf("one item = %q", got)
	}
	r.Item1 = "Minion Expander"
	if got := items(r); got != "Minion Expander + Flycatcher" {
		t.Errorf("two items = %q", got)
	}
}
