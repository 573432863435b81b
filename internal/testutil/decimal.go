package testutil

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// DecimalMatcher compares decimals by value. It satisfies both
// pgxmock.Argument and gomock.Matcher.
type DecimalMatcher struct {
	want decimal.Decimal
}

func Decimal(s string) DecimalMatcher {
	return DecimalMatcher{want: decimal.RequireFromString(s)}
}

func (m DecimalMatcher) Match(v interface{}) bool {
	return m.Matches(v)
}

func (m DecimalMatcher) Matches(v any) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m DecimalMatcher) String() string {
	return fmt.Sprintf("is decimal %s", m.want)
}

func AssertDecimal(t *testing.T, expected string, actual decimal.Decimal) bool {
	t.Helper()
	want := decimal.RequireFromString(expected)
	return assert.Truef(t, want.Equal(actual), "expected %s, got %s", want, actual)
}
