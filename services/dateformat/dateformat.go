// Package dateformat renders backend ISO 8601 timestamps for display.
//
// The backend emits naive UTC timestamps (no zone marker), so any input
// without a zone is read as UTC. Formatting never fails: empty input gives
// an empty string and unparseable input is returned unchanged.
package dateformat

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
)

// Style selects the set of date fields rendered by FormatDate.
type Style string

const (
	StyleShort  Style = "short"  // numeric year, month and day
	StyleMedium Style = "medium" // abbreviated month, numeric year and day
	StyleLong   Style = "long"   // weekday, full month, numeric year and day
)

// localeMap maps UI language tags to the locale used for dates.
// British English for en, Traditional Chinese (Hong Kong) for zh.
var localeMap = map[string]string{
	"en": "en-GB",
	"zh": "zh-HK",
}

var zoneSuffix = regexp.MustCompile(`[Zz]$|[+-]\d{2}:?\d{2}$`)

const dateOnlyLayout = "2006-01-02"

// Formatter formats timestamps for a default locale and display zone.
type Formatter struct {
	// DefaultLocale is used when a call passes no locale. Empty means en-GB.
	DefaultLocale string
	// Location, when set, is the zone date-times are shown in. When nil the
	// parsed offset is kept, so naive input shows as UTC. Bare dates such
	// as "2026-09-30" are never shifted.
	Location *time.Location
}

var defaultFormatter = &Formatter{DefaultLocale: fallbackLocale}

// FormatDate formats isoDate with the default formatter.
func FormatDate(isoDate, locale string, style Style) string {
	return defaultFormatter.FormatDate(isoDate, locale, style)
}

// FormatDateTime formats isoDate with the default formatter.
func FormatDateTime(isoDate, locale string) string {
	return defaultFormatter.FormatDateTime(isoDate, locale)
}

// FormatDate formats isoDate as a date. An empty style means StyleMedium.
// e.g. "2026-02-04T09:08:32.000078" in en is "4 Feb 2026", in zh "2026年2月4日".
func (f *Formatter) FormatDate(isoDate, locale string, style Style) string {
	if isoDate == "" {
		return ""
	}
	t, ok := f.parseForDisplay(isoDate)
	if !ok {
		return isoDate
	}

	data := f.localeFor(locale)
	pattern := data.medium
	switch style {
	case StyleShort:
		pattern = data.short
	case StyleLong:
		pattern = data.long
	}
	return expand(pattern, t, data)
}

// FormatDateTime formats isoDate with full month name and 12-hour time,
// e.g. "4 February 2026 at 09:08 am" or "2026年2月4日 上午09:08".
func (f *Formatter) FormatDateTime(isoDate, locale string) string {
	if isoDate == "" {
		return ""
	}
	t, ok := f.parseForDisplay(isoDate)
	if !ok {
		return isoDate
	}

	data := f.localeFor(locale)
	return expand(data.dateTime, t, data)
}

// ResolveLocale maps a short UI tag to its date locale. Unmapped tags are
// returned unchanged.
func ResolveLocale(tag string) string {
	if mapped, ok := localeMap[tag]; ok {
		return mapped
	}
	return tag
}

// HasZone reports whether s ends in Z or a ±HH:MM / ±HHMM offset.
func HasZone(s string) bool {
	return zoneSuffix.MatchString(s)
}

// Parse reads an ISO 8601 date or date-time. Date-times without a zone are
// read as UTC; a bare date is midnight UTC.
func Parse(isoDate string) (time.Time, bool) {
	t, _, ok := parse(isoDate)
	return t, ok
}

// parseForDisplay parses isoDate and moves date-times into the display
// zone. Bare dates name a calendar day, so they stay as written.
func (f *Formatter) parseForDisplay(isoDate string) (time.Time, bool) {
	t, dateOnly, ok := parse(isoDate)
	if !ok {
		return time.Time{}, false
	}
	if dateOnly || f.Location == nil {
		return t, true
	}
	return t.In(f.Location), true
}

func parse(isoDate string) (t time.Time, dateOnly, ok bool) {
	s := strings.TrimSpace(isoDate)
	if s == "" {
		return time.Time{}, false, false
	}

	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, true, true
	}

	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	switch {
	case !HasZone(s):
		s += "Z"
	case strings.HasSuffix(s, "z"):
		s = strings.TrimSuffix(s, "z") + "Z"
	}

	t, err := iso8601.ParseString(s)
	if err != nil {
		return time.Time{}, false, false
	}
	return t, false, true
}

func (f *Formatter) localeFor(locale string) *localeData {
	code := ResolveLocale(locale)
	if code == "" {
		code = ResolveLocale(f.DefaultLocale)
	}
	if data, ok := lookup(code); ok {
		return data
	}
	if data, ok := lookup(ResolveLocale(f.DefaultLocale)); ok {
		return data
	}
	return locales[fallbackLocale]
}

// expand replaces {token} placeholders in pattern with fields of t.
func expand(pattern string, t time.Time, data *localeData) string {
	var b strings.Builder
	b.Grow(len(pattern) + 16)

	for i := 0; i < len(pattern); {
		if pattern[i] != '{' {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			b.WriteString(pattern[i:])
			break
		}
		b.WriteString(field(pattern[i+1:i+end], t, data))
		i += end + 1
	}
	return b.String()
}

func field(token string, t time.Time, data *localeData) string {
	switch token {
	case "yyyy":
		return strconv.Itoa(t.Year())
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "MM":
		return t.Format("01")
	case "MMM":
		return data.monthsShort[t.Month()-1]
	case "MMMM":
		return data.months[t.Month()-1]
	case "d":
		return strconv.Itoa(t.Day())
	case "dd":
		return t.Format("02")
	case "EEEE":
		return data.weekdays[t.Weekday()]
	case "hh":
		return t.Format("03")
	case "mm":
		return t.Format("04")
	case "a":
		if t.Hour() < 12 {
			return data.am
		}
		return data.pm
	}
	return "{" + token + "}"
}
