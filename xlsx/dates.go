package xlsx

import (
	"math"
	"time"
)

// Serial date support. Spreadsheet dates are day counts from an epoch chosen
// by the workbook datemode: 0 for the 1900 system, 1 for the 1904 system.
// The 1900 system inherits the historical leap-year bug, so serials below 61
// are ambiguous there.

var jdnDelta = [2]int{2415080 - 61, 2416482 - 1}

const (
	serialTooLarge1900 = 2958466
	serialTooLarge1904 = 2958466 - 1462
)

var (
	epoch1904       = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	epoch1900       = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	epoch1900Minus1 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
)

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func leap(y int) int {
	if y%4 != 0 {
		return 0
	}
	if y%100 != 0 {
		return 1
	}
	if y%400 != 0 {
		return 0
	}
	return 1
}

// SerialToTuple converts a serial date number into Gregorian
// (year, month, day, hour, minute, nearest_second).
//
// Special case: if 0.0 <= serial < 1.0 it is assumed to represent a time;
// (0, 0, 0, hour, minute, second) is returned.
func SerialToTuple(serial float64, datemode int) (int, int, int, int, int, int, error) {
	if datemode != 0 && datemode != 1 {
		return 0, 0, 0, 0, 0, 0, NewError(KindCustom, "Invalid datemode: %d", datemode)
	}
	if serial == 0.00 {
		return 0, 0, 0, 0, 0, 0, nil
	}
	if serial < 0.00 {
		return 0, 0, 0, 0, 0, 0, NewError(KindCustom, "serial date < 0.00: %f", serial)
	}
	days := int(serial)
	frac := serial - float64(days)
	seconds := int(math.Round(frac * 86400.0))
	if seconds < 0 || seconds > 86400 {
		return 0, 0, 0, 0, 0, 0, NewError(KindCustom, "Invalid seconds: %d", seconds)
	}

	hour := 0
	minute := 0
	second := 0

	if seconds == 86400 {
		days++
	} else {
		minutes := seconds / 60
		second = seconds % 60
		hour = minutes / 60
		minute = minutes % 60
	}

	tooLarge := serialTooLarge1900
	if datemode == 1 {
		tooLarge = serialTooLarge1904
	}
	if days >= tooLarge {
		return 0, 0, 0, 0, 0, 0, NewError(KindCustom, "serial date too large: %f", serial)
	}

	if days == 0 {
		return 0, 0, 0, hour, minute, second, nil
	}

	if days < 61 && datemode == 0 {
		return 0, 0, 0, 0, 0, 0, NewError(KindCustom, "1900 leap-year problem: %f", serial)
	}

	jdn := days + jdnDelta[datemode]
	yreg := ((((jdn*4+274277)/146097)*3/4)+jdn+1363)*4 + 3
	mp := ((yreg%1461)/4)*535 + 333
	d := ((mp % 16384) / 535) + 1
	mp >>= 14
	if mp >= 10 {
		return ((yreg / 1461) - 4715), (mp - 9), d, hour, minute, second, nil
	}
	return ((yreg / 1461) - 4716), (mp + 3), d, hour, minute, second, nil
}

// SerialToTime converts a serial date number into a time.Time in UTC.
func SerialToTime(serial float64, datemode int) (time.Time, error) {
	var epoch time.Time
	if datemode == 1 {
		epoch = epoch1904
	} else {
		if serial < 60 {
			epoch = epoch1900
		} else {
			// Workaround the 1900 leap year bug by adjusting the epoch.
			epoch = epoch1900Minus1
		}
	}

	days := int(serial)
	fraction := serial - float64(days)

	// Integer and decimal seconds at millisecond resolution.
	seconds := int(math.Round(fraction * 86400000.0))
	secs := seconds / 1000
	milliseconds := seconds % 1000

	return epoch.AddDate(0, 0, days).Add(time.Duration(secs)*time.Second + time.Duration(milliseconds)*time.Millisecond), nil
}

// SerialFromDate converts a Gregorian date to a serial date number.
func SerialFromDate(year, month, day int, datemode int) (float64, error) {
	if datemode != 0 && datemode != 1 {
		return 0.0, NewError(KindCustom, "Invalid datemode: %d", datemode)
	}

	if year == 0 && month == 0 && day == 0 {
		return 0.00, nil
	}

	if year < 1900 || year > 9999 {
		return 0.0, NewError(KindCustom, "Invalid year: (%d, %d, %d)", year, month, day)
	}
	if month < 1 || month > 12 {
		return 0.0, NewError(KindCustom, "Invalid month: (%d, %d, %d)", year, month, day)
	}
	maxDay := daysInMonth[month]
	if month == 2 && leap(year) == 1 {
		maxDay = 29
	}
	if day < 1 || day > maxDay {
		return 0.0, NewError(KindCustom, "Invalid day: (%d, %d, %d)", year, month, day)
	}

	yp := year + 4716
	var mp int
	if month <= 2 {
		yp = yp - 1
		mp = month + 9
	} else {
		mp = month - 3
	}
	jdn := (1461 * yp / 4) + ((979*mp + 16) / 32) + day - 1364 - (((yp + 184) / 100) * 3 / 4)
	days := jdn - jdnDelta[datemode]
	if days <= 0 {
		return 0.0, NewError(KindCustom, "Invalid (year, month, day): (%d, %d, %d)", year, month, day)
	}
	if days < 61 && datemode == 0 {
		return 0.0, NewError(KindCustom, "Before 1900-03-01: (%d, %d, %d)", year, month, day)
	}
	return float64(days), nil
}

// SerialFromTime converts a time of day to a serial date fraction.
func SerialFromTime(hour, minute, second int) (float64, error) {
	if hour < 0 || hour >= 24 || minute < 0 || minute >= 60 || second < 0 || second >= 60 {
		return 0.0, NewError(KindCustom, "Invalid (hour, minute, second): (%d, %d, %d)", hour, minute, second)
	}
	return ((float64(second)/60.0+float64(minute))/60.0 + float64(hour)) / 24.0, nil
}

// SerialFromDateTime converts a full datetime to a serial date number.
func SerialFromDateTime(year, month, day, hour, minute, second int, datemode int) (float64, error) {
	datePart, err := SerialFromDate(year, month, day, datemode)
	if err != nil {
		return 0.0, err
	}
	timePart, err := SerialFromTime(hour, minute, second)
	if err != nil {
		return 0.0, err
	}
	return datePart + timePart, nil
}
