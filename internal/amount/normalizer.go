package amount

import (
	"fmt"
	"strconv"
	"strings"

	"wallet_client/internal/custom_err"
)

const (
	DefaultMin      int64 = 10_000
	DefaultMax      int64 = 2_000_000
	DefaultLocale         = "en"
	DefaultCurrency       = "Rp"

	// maxDigits caps what the input field holds; longer input is truncated.
	maxDigits = 15
)

type Config struct {
	Min      int64
	Max      int64
	Locale   string
	Currency string
}

// Input is the state of an amount field after one edit. Raw is what gets
// submitted, Display is what gets shown; both derive from Value.
type Input struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
	Value   int64  `json:"value"`
	Err     error  `json:"-"`
}

func (in Input) Empty() bool { return in.Raw == "" }

// Valid reports whether the input can be submitted.
func (in Input) Valid() bool { return !in.Empty() && in.Err == nil }

func (in Input) ErrorMessage() string {
	if in.Err == nil {
		return ""
	}
	msg := in.Err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

type Normalizer struct {
	min       int64
	max       int64
	formatter *Formatter
}

func NewNormalizer(cfg Config) *Normalizer {
	if cfg.Min <= 0 {
		cfg.Min = DefaultMin
	}
	if cfg.Max <= 0 || cfg.Max < cfg.Min {
		cfg.Max = DefaultMax
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	return &Normalizer{
		min:       cfg.Min,
		max:       cfg.Max,
		formatter: NewFormatter(cfg.Locale, cfg.Currency),
	}
}

func (n *Normalizer) Formatter() *Formatter { return n.formatter }

// Normalize turns free text into an amount input. Out-of-bounds values are
// kept with a non-fatal error so the user can keep editing.
func (n *Normalizer) Normalize(text string) Input {
	digits := DigitsOnly(text)
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}
	if digits == "" {
		return Input{}
	}
	// maxDigits keeps the value well inside int64.
	value, _ := strconv.ParseInt(digits, 10, 64)
	return Input{
		Raw:     strconv.FormatInt(value, 10),
		Display: n.formatter.Group(value),
		Value:   value,
		Err:     n.CheckBounds(value),
	}
}

func (n *Normalizer) CheckBounds(v int64) error {
	switch {
	case v < n.min:
		return fmt.Errorf("%w: Minimum transaction is %s", custom_err.ErrAmountTooSmall, n.formatter.currency+n.formatter.Group(n.min))
	case v > n.max:
		return fmt.Errorf("%w: Maximum transaction is %s", custom_err.ErrAmountTooLarge, n.formatter.currency+n.formatter.Group(n.max))
	}
	return nil
}
