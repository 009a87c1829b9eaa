package main

import (
	"testing"

	"github.com/yamitzky/xlsx-go/xlsx"
)

func TestParseDelimiter(t *testing.T) {
	cases := []struct {
		in   string
		want rune
	}{
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{"x09", '\t'},
	}
	for _, c := range cases {
		got, err := parseDelimiter(c.in)
		if err != nil {
			t.Errorf("parseDelimiter(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseDelimiter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "ab"} {
		if _, err := parseDelimiter(bad); err == nil {
			t.Errorf("parseDelimiter(%q) succeeded, want error", bad)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for _, name := range []string{"none", "fast", "default", "best"} {
		if _, err := parseCompression(name); err != nil {
			t.Errorf("parseCompression(%q) failed: %v", name, err)
		}
	}
	if _, err := parseCompression("maximum"); err == nil {
		t.Error("parseCompression(maximum) succeeded, want error")
	}
}

func TestLooksLikeDateFormat(t *testing.T) {
	dateish := []string{"mm-dd-yy", "d-mmm", "h:mm:ss", "yyyy-mm-dd", "[h]:mm:ss"}
	for _, code := range dateish {
		if !looksLikeDateFormat(code) {
			t.Errorf("looksLikeDateFormat(%q) = false, want true", code)
		}
	}
	numeric := []string{"", "General", "0.00", "#,##0", "0%", "0.00E+00", "@", "#,##0 ;[Red](#,##0)", `0.00" days"`}
	for _, code := range numeric {
		if looksLikeDateFormat(code) {
			t.Errorf("looksLikeDateFormat(%q) = true, want false", code)
		}
	}
}

func TestCellTextDateRendering(t *testing.T) {
	ws := xlsx.NewWorksheet("Data")
	ws.SetCellValue(1, 1, xlsx.NumberValue(36526))
	ws.SetCellNumberFormat(1, 1, "yyyy-mm-dd")
	ws.SetCellValue(1, 2, xlsx.NumberValue(36526))

	if got := cellText(ws.GetCell(1, 1)); got != "2000-01-01" {
		t.Errorf("date-formatted cell rendered %q, want 2000-01-01", got)
	}
	if got := cellText(ws.GetCell(1, 2)); got != "36526" {
		t.Errorf("plain number rendered %q, want 36526", got)
	}
	if got := cellText(nil); got != "" {
		t.Errorf("nil cell rendered %q, want empty", got)
	}
}

func TestRowEmpty(t *testing.T) {
	if !rowEmpty([]string{"", "", ""}) {
		t.Error("all-empty row reported non-empty")
	}
	if rowEmpty([]string{"", "x"}) {
		t.Error("non-empty row reported empty")
	}
}
