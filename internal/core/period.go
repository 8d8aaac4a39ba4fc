package core

import (
	"fmt"
	"strings"
	"time"
)

var periodLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParsePeriod parses a month identifier as sent by the metrics API.
func ParsePeriod(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var monthAbbrev = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"tr": {"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"},
	"de": {"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
}

// SupportedLocale reports whether month labels exist for locale.
func SupportedLocale(locale string) bool {
	_, ok := monthAbbrev[normalizeLocale(locale)]
	return ok
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

// PeriodLabel renders raw as a short month label ("Jan 24"). Unknown
// locales use English; unparseable input is returned unchanged.
func PeriodLabel(raw, locale string) string {
	t, ok := ParsePeriod(raw)
	if !ok {
		return raw
	}
	names, ok := monthAbbrev[normalizeLocale(locale)]
	if !ok {
		names = monthAbbrev["en"]
	}
	return fmt.Sprintf("%s %02d", names[t.Month()-1], t.Year()%100)
}
