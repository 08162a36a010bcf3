package flatten

import (
	"strconv"
	"time"

	"github.com/relvacode/iso8601"
)

// epochNanosThreshold separates millisecond from nanosecond epochs.
// Millisecond epochs stay below it until roughly year 33658, while nanosecond
// epochs cross it in early 1970. Seconds or microseconds are not recognised.
const epochNanosThreshold = 1_000_000_000_000_000

type candidateKind int

const (
	candidateInvalid candidateKind = iota
	candidateEpoch
	candidateText
)

// timestampCandidate is the classification of a raw order_timestamp value.
// Only one of digits/text is meaningful, depending on kind.
type timestampCandidate struct {
	kind   candidateKind
	digits string
	text   string
}

// NullTime is a UTC instant or the absence of one.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// textLayouts are tried after ISO-8601, in order. Zone-less layouts parse as UTC.
var textLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.ANSIC,
}

// NormalizeTimestamps converts each raw value to a UTC instant. Values that
// cannot be interpreted come back with Valid=false; nothing here fails.
func NormalizeTimestamps(values []any) []NullTime {
	out := make([]NullTime, len(values))
	for i, v := range values {
		c := classifyTimestamp(v)
		switch c.kind {
		case candidateEpoch:
			out[i] = parseEpoch(c.digits)
		case candidateText:
			out[i] = parseText(c.text)
		}
	}
	return out
}

func classifyTimestamp(v any) timestampCandidate {
	switch t := v.(type) {
	case int64:
		if t < 0 {
			return timestampCandidate{kind: candidateInvalid}
		}
		return timestampCandidate{kind: candidateEpoch, digits: strconv.FormatInt(t, 10)}
	case string:
		if isAllDigits(t) {
			return timestampCandidate{kind: candidateEpoch, digits: t}
		}
		return timestampCandidate{kind: candidateText, text: t}
	default:
		// floats, bools, nested values and nulls never name an instant
		return timestampCandidate{kind: candidateInvalid}
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseEpoch(digits string) NullTime {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return NullTime{}
	}
	if n < epochNanosThreshold {
		return NullTime{Time: time.UnixMilli(n).UTC(), Valid: true}
	}
	return NullTime{Time: time.Unix(0, n).UTC(), Valid: true}
}

func parseText(s string) NullTime {
	if t, err := iso8601.ParseString(s); err == nil {
		return NullTime{Time: t.UTC(), Valid: true}
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NullTime{Time: t.UTC(), Valid: true}
		}
	}
	return NullTime{}
}
