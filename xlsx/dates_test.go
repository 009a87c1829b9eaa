package xlsx

import (
	"testing"
	"time"
)

func TestSerialToTupleKnownDates(t *testing.T) {
	cases := []struct {
		serial   float64
		datemode int
		want     [6]int
	}{
		{61, 0, [6]int{1900, 3, 1, 0, 0, 0}},
		{36526, 0, [6]int{2000, 1, 1, 0, 0, 0}},
		{2958465, 0, [6]int{9999, 12, 31, 0, 0, 0}},
		{1, 1, [6]int{1904, 1, 2, 0, 0, 0}},
		{0.5, 0, [6]int{0, 0, 0, 12, 0, 0}},
		{0.25, 0, [6]int{0, 0, 0, 6, 0, 0}},
	}
	for _, c := range cases {
		y, m, d, hh, mm, ss, err := SerialToTuple(c.serial, c.datemode)
		if err != nil {
			t.Errorf("SerialToTuple(%v, %d) failed: %v", c.serial, c.datemode, err)
			continue
		}
		got := [6]int{y, m, d, hh, mm, ss}
		if got != c.want {
			t.Errorf("SerialToTuple(%v, %d) = %v, want %v", c.serial, c.datemode, got, c.want)
		}
	}
}

func TestSerialToTupleErrors(t *testing.T) {
	if _, _, _, _, _, _, err := SerialToTuple(1, 2); err == nil {
		t.Error("bad datemode accepted")
	}
	if _, _, _, _, _, _, err := SerialToTuple(-1, 0); err == nil {
		t.Error("negative serial accepted")
	}
	// Serials 1..60 are ambiguous in the 1900 system.
	if _, _, _, _, _, _, err := SerialToTuple(30, 0); err == nil {
		t.Error("ambiguous 1900 serial accepted")
	}
	if _, _, _, _, _, _, err := SerialToTuple(30, 1); err != nil {
		t.Errorf("serial 30 in 1904 system failed: %v", err)
	}
	if _, _, _, _, _, _, err := SerialToTuple(2958466, 0); err == nil {
		t.Error("too-large serial accepted")
	}
}

func TestSerialFromDate(t *testing.T) {
	serial, err := SerialFromDate(1900, 3, 1, 0)
	if err != nil {
		t.Fatalf("SerialFromDate failed: %v", err)
	}
	if serial != 61 {
		t.Errorf("SerialFromDate(1900-03-01) = %v, want 61", serial)
	}

	serial, err = SerialFromDate(2000, 1, 1, 0)
	if err != nil {
		t.Fatalf("SerialFromDate failed: %v", err)
	}
	if serial != 36526 {
		t.Errorf("SerialFromDate(2000-01-01) = %v, want 36526", serial)
	}

	if _, err := SerialFromDate(1899, 12, 31, 0); err == nil {
		t.Error("pre-1900 date accepted")
	}
	if _, err := SerialFromDate(1900, 2, 1, 0); err == nil {
		t.Error("ambiguous 1900 date accepted")
	}
	if _, err := SerialFromDate(2021, 13, 1, 0); err == nil {
		t.Error("month 13 accepted")
	}
	if _, err := SerialFromDate(2021, 2, 29, 0); err == nil {
		t.Error("Feb 29 in non-leap year accepted")
	}
	if _, err := SerialFromDate(2020, 2, 29, 0); err != nil {
		t.Errorf("Feb 29 2020 rejected: %v", err)
	}
}

func TestSerialFromTime(t *testing.T) {
	serial, err := SerialFromTime(12, 0, 0)
	if err != nil {
		t.Fatalf("SerialFromTime failed: %v", err)
	}
	if serial != 0.5 {
		t.Errorf("SerialFromTime(12:00:00) = %v, want 0.5", serial)
	}
	if _, err := SerialFromTime(24, 0, 0); err == nil {
		t.Error("hour 24 accepted")
	}
	if _, err := SerialFromTime(0, 60, 0); err == nil {
		t.Error("minute 60 accepted")
	}
}

func TestSerialDateTimeRoundTrip(t *testing.T) {
	serial, err := SerialFromDateTime(2024, 6, 15, 13, 45, 30, 0)
	if err != nil {
		t.Fatalf("SerialFromDateTime failed: %v", err)
	}
	y, m, d, hh, mm, ss, err := SerialToTuple(serial, 0)
	if err != nil {
		t.Fatalf("SerialToTuple failed: %v", err)
	}
	if y != 2024 || m != 6 || d != 15 || hh != 13 || mm != 45 || ss != 30 {
		t.Errorf("round trip = %d-%d-%d %d:%d:%d", y, m, d, hh, mm, ss)
	}
}

func TestSerialToTime(t *testing.T) {
	got, err := SerialToTime(36526.5, 0)
	if err != nil {
		t.Fatalf("SerialToTime failed: %v", err)
	}
	want := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SerialToTime(36526.5) = %v, want %v", got, want)
	}
}
