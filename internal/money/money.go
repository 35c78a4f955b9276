// Package money formats ride amounts as localized currency strings and
// reads them back.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("invalid money amount")

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.EuropeanPortuguese,
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Formatter renders amounts for one locale. Separators and symbol come
// from the locale's CLDR data.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer

	symbol  string
	group   string
	decimal string
}

// New returns a Formatter for the locale closest to the requested one.
// Locales with no reasonable match are rejected.
func New(locale string) (*Formatter, error) {
	want, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	tag := supported[idx]

	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return nil, fmt.Errorf("no currency for locale %s", tag)
	}

	f := &Formatter{tag: tag, unit: unit, printer: message.NewPrinter(tag)}
	f.learnSeparators()
	return f, nil
}

// learnSeparators reads the symbol and separators back from formatted
// samples, so Parse accepts exactly what Format writes.
func (f *Formatter) learnSeparators() {
	p := f.printer

	f.symbol, _, _ = strings.Cut(p.Sprint(currency.Symbol(f.unit.Amount(0))), " ")

	var seps []string
	for _, r := range p.Sprint(number.Decimal(1234567.5, number.Scale(2))) {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	if len(seps) > 0 {
		f.decimal = seps[len(seps)-1]
	}
	if len(seps) > 1 {
		f.group = seps[0]
	}
}

// MustNew is New for locales known at compile time.
func MustNew(locale string) *Formatter {
	f, err := New(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the matched locale tag.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Currency returns the ISO 4217 code amounts are shown in.
func (f *Formatter) Currency() string { return f.unit.String() }

// Format renders v with currency symbol and locale separators,
// e.g. 1234.5 in pt-BR is "R$ 1.234,50" and -42.1 is "-R$ 42,10".
func (f *Formatter) Format(v float64) string {
	d := decimal.NewFromFloat(sanitize(v)).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	return sign + f.printer.Sprint(currency.Symbol(f.unit.Amount(d.InexactFloat64())))
}

// Plain renders v with two decimals and a dot separator, the form an
// input field expects.
func (f *Formatter) Plain(v float64) string {
	return decimal.NewFromFloat(sanitize(v)).StringFixed(2)
}

// Parse reads back a string produced by Format: the symbol and group
// separators are dropped and the decimal separator is normalised.
func (f *Formatter) Parse(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	if f.symbol != "" {
		raw = strings.ReplaceAll(raw, f.symbol, "")
	}
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, raw)
	if f.group != "" {
		raw = strings.ReplaceAll(raw, f.group, "")
	}
	if f.decimal != "" && f.decimal != "." {
		raw = strings.Replace(raw, f.decimal, ".", 1)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.InexactFloat64(), nil
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
