package dateformat

import (
	"golang.org/x/text/language"
)

// localeData holds the names and patterns used to render one locale.
// Patterns use {token} placeholders, see expand.
type localeData struct {
	months      [12]string
	monthsShort [12]string
	weekdays    [7]string // Sunday first, matching time.Weekday
	am, pm      string

	short    string
	medium   string
	long     string
	dateTime string
}

var englishMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var englishWeekdays = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var chineseMonths = [12]string{
	"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月",
}

var chineseWeekdays = [7]string{
	"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六",
}

// locales maps full locale codes to their formatting rules.
var locales = map[string]*localeData{
	"en-GB": {
		months: englishMonths,
		monthsShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec",
		},
		weekdays: englishWeekdays,
		am:       "am",
		pm:       "pm",
		short:    "{dd}/{MM}/{yyyy}",
		medium:   "{d} {MMM} {yyyy}",
		long:     "{EEEE} {d} {MMMM} {yyyy}",
		dateTime: "{d} {MMMM} {yyyy} at {hh}:{mm} {a}",
	},
	"en-US": {
		months: englishMonths,
		monthsShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		weekdays: englishWeekdays,
		am:       "AM",
		pm:       "PM",
		short:    "{M}/{d}/{yyyy}",
		medium:   "{MMM} {d}, {yyyy}",
		long:     "{EEEE}, {MMMM} {d}, {yyyy}",
		dateTime: "{MMMM} {d}, {yyyy} at {hh}:{mm} {a}",
	},
	"zh-HK": {
		months:      chineseMonths,
		monthsShort: chineseMonths,
		weekdays:    chineseWeekdays,
		am:          "上午",
		pm:          "下午",
		short:       "{d}/{M}/{yyyy}",
		medium:      "{yyyy}年{M}月{d}日",
		long:        "{yyyy}年{M}月{d}日{EEEE}",
		dateTime:    "{yyyy}年{M}月{d}日 {a}{hh}:{mm}",
	},
	"zh-TW": {
		months:      chineseMonths,
		monthsShort: chineseMonths,
		weekdays:    chineseWeekdays,
		am:          "上午",
		pm:          "下午",
		short:       "{yyyy}/{M}/{d}",
		medium:      "{yyyy}年{M}月{d}日",
		long:        "{yyyy}年{M}月{d}日 {EEEE}",
		dateTime:    "{yyyy}年{M}月{d}日 {a}{hh}:{mm}",
	},
	"zh-CN": {
		months:      chineseMonths,
		monthsShort: chineseMonths,
		weekdays:    chineseWeekdays,
		am:          "上午",
		pm:          "下午",
		short:       "{yyyy}/{M}/{d}",
		medium:      "{yyyy}年{M}月{d}日",
		long:        "{yyyy}年{M}月{d}日{EEEE}",
		dateTime:    "{yyyy}年{M}月{d}日 {a}{hh}:{mm}",
	},
}

// fallbackLocale renders anything that matches nothing else.
const fallbackLocale = "en-GB"

// supportedCodes is ordered for the matcher; the first entry is the matcher default.
var supportedCodes = []string{"en-GB", "en-US", "zh-HK", "zh-TW", "zh-CN"}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(supportedCodes))
	for _, code := range supportedCodes {
		tags = append(tags, language.MustParse(code))
	}
	return language.NewMatcher(tags)
}

// lookup returns the rules for a resolved locale code. Codes that are not
// in the table are matched against the supported set; ok is false when
// nothing is close enough.
func lookup(code string) (*localeData, bool) {
	if code == "" {
		return nil, false
	}
	if data, ok := locales[code]; ok {
		return data, true
	}

	tag, err := language.Parse(code)
	if err != nil {
		return nil, false
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return nil, false
	}
	return locales[supportedCodes[index]], true
}
