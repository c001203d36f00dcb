package compress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// NumericStage rewrites quantities to short-suffix notation: Korean
// magnitude units (만/억/조 -> w/e/t), large plain numbers, currency,
// calendar years ('YY), duration units, and percent spellings.
type NumericStage struct{}

func NewNumericStage() *NumericStage { return &NumericStage{} }

func (s *NumericStage) Name() string { return "numeric" }

var (
	reJo        = regexp.MustCompile(`(\d+(?:\.\d+)?)조`)
	reEok       = regexp.MustCompile(`(\d+(?:\.\d+)?)억`)
	reMan       = regexp.MustCompile(`(\d+(?:\.\d+)?)만`)
	reDigitRun  = regexp.MustCompile(`\d{4,}`)
	reUnitWon   = regexp.MustCompile(`(\d+(?:\.\d+)?[wet])원`)
	reWon       = regexp.MustCompile(`(\d+)원`)
	reYearMonth = regexp.MustCompile(`((?:20|19)\d{2})년\s*(\d{1,2})월`)
	reYear      = regexp.MustCompile(`((?:20|19)\d{2})년도?`)
	reMonths    = regexp.MustCompile(`(\d+)개월`)
	reDays      = regexp.MustCompile(`(\d+)일요?`)
	reYears     = regexp.MustCompile(`(\d+)년도?`)
	rePercent   = regexp.MustCompile(`(\d+(?:\.\d+)?)(?:퍼센트|프로)`)
)

// Apply runs the numeric sub-passes in fixed order. Years are rewritten
// before the generic duration pass so "2024년" becomes '24, never 2024y.
func (s *NumericStage) Apply(text string) (string, int) {
	// Fold full-width digits and punctuation ("１５０만") to their ASCII
	// forms so one set of patterns covers both spellings.
	text = width.Narrow.String(text)

	total := 0
	for _, pass := range []func(string) (string, int){
		compressKoreanUnits,
		compressLargeNumbers,
		compressCurrency,
		compressYears,
		compressDurations,
		compressPercents,
	} {
		var n int
		text, n = pass(text)
		total += n
	}
	return text, total
}

// compressKoreanUnits rewrites 조/억/만 magnitudes: 5조 -> 5t, 10억 -> 10e,
// 150만 -> 150w.
func compressKoreanUnits(text string) (string, int) {
	count := 0
	sub := func(re *regexp.Regexp, suffix string) {
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			count++
			return re.FindStringSubmatch(m)[1] + suffix
		})
	}
	sub(reJo, "t")
	sub(reEok, "e")
	sub(reMan, "w")
	return text, count
}

// numericBoundary reports whether a rune can sit directly next to a plain
// number without the digits being part of a larger token. Letters (Hangul
// included), digits, and decimal points disqualify the match; regexp \b
// is ASCII-only in Go, so the check is done by hand.
func numericBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '\''
}

// compressLargeNumbers scales free-standing numbers of four or more
// digits: 1500000 -> 150w, 50000 -> 5w, 3000 -> 3k.
func compressLargeNumbers(text string) (string, int) {
	count := 0
	var b strings.Builder
	last := 0
	for _, loc := range reDigitRun.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			if !numericBoundary(prev) {
				continue
			}
		}
		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if !numericBoundary(next) {
				continue
			}
		}
		n, err := strconv.ParseInt(text[start:end], 10, 64)
		if err != nil {
			continue
		}
		scaled, ok := scaleMagnitude(n)
		if !ok {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(scaled)
		last = end
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), count
}

// scaleMagnitude renders n in short-suffix notation, one decimal place
// when the division is not exact. Numbers below 1000 are left alone.
func scaleMagnitude(n int64) (string, bool) {
	switch {
	case n >= 1_000_000_000_000:
		return scaleBy(n, 1_000_000_000_000, "t"), true
	case n >= 100_000_000:
		return scaleBy(n, 100_000_000, "e"), true
	case n >= 10_000:
		return scaleBy(n, 10_000, "w"), true
	case n >= 1_000:
		return fmt.Sprintf("%dk", n/1_000), true
	}
	return "", false
}

func scaleBy(n, unit int64, suffix string) string {
	if n%unit == 0 {
		return fmt.Sprintf("%d%s", n/unit, suffix)
	}
	return fmt.Sprintf("%.1f%s", float64(n)/float64(unit), suffix)
}

// compressCurrency drops the redundant 원 after an already-scaled value
// (10e원 -> 10e) and scales remaining N원 amounts (1500000원 -> 150w).
func compressCurrency(text string) (string, int) {
	count := 0
	text = reUnitWon.ReplaceAllStringFunc(text, func(m string) string {
		count++
		return reUnitWon.FindStringSubmatch(m)[1]
	})
	text = reWon.ReplaceAllStringFunc(text, func(m string) string {
		digits := reWon.FindStringSubmatch(m)[1]
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return m
		}
		switch {
		case n >= 1_000_000_000_000:
			count++
			return fmt.Sprintf("%.0ft", float64(n)/1_000_000_000_000)
		case n >= 100_000_000:
			count++
			return fmt.Sprintf("%.0fe", float64(n)/100_000_000)
		case n >= 10_000:
			count++
			return fmt.Sprintf("%.0fw", float64(n)/10_000)
		case n >= 1_000:
			count++
			return fmt.Sprintf("%.0fk", float64(n)/1_000)
		}
		return m
	})
	return text, count
}

// compressYears rewrites calendar years: 2024년 1월 -> '24.1, then
// 2024년 / 2024년도 -> '24. Running year-month first keeps the month from
// being re-matched as a bare duration.
func compressYears(text string) (string, int) {
	count := 0
	text = reYearMonth.ReplaceAllStringFunc(text, func(m string) string {
		sub := reYearMonth.FindStringSubmatch(m)
		count++
		return "'" + sub[1][2:] + "." + sub[2]
	})
	text = reYear.ReplaceAllStringFunc(text, func(m string) string {
		sub := reYear.FindStringSubmatch(m)
		count++
		return "'" + sub[1][2:]
	})
	return text, count
}

// compressDurations rewrites 12개월 -> 12mo, 30일 -> 30d, 5년 -> 5y.
// Weekday spellings (3일요일) and appended 도 (5년도) are left untouched;
// Go regexps have no lookahead, so the trailing rune is captured and the
// match returned unchanged when it is present.
func compressDurations(text string) (string, int) {
	count := 0
	text = reMonths.ReplaceAllStringFunc(text, func(m string) string {
		count++
		return reMonths.FindStringSubmatch(m)[1] + "mo"
	})
	text = reDays.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasSuffix(m, "요") {
			return m
		}
		count++
		return reDays.FindStringSubmatch(m)[1] + "d"
	})
	text = reYears.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasSuffix(m, "도") {
			return m
		}
		count++
		return reYears.FindStringSubmatch(m)[1] + "y"
	})
	return text, count
}

// compressPercents collapses percent spellings: 35퍼센트 -> 35%, 50프로 -> 50%.
func compressPercents(text string) (string, int) {
	count := 0
	text = rePercent.ReplaceAllStringFunc(text, func(m string) string {
		count++
		return rePercent.FindStringSubmatch(m)[1] + "%"
	})
	return text, count
}
