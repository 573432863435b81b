package validate

import (
	"regexp"
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// ReferralCodeLength includes the trailing Luhn check digit.
const ReferralCodeLength = 10

var (
	sortCodeRe      = regexp.MustCompile(`^\d{2}-?\d{2}-?\d{2}$`)
	accountNumberRe = regexp.MustCompile(`^\d{8}$`)
)

// IsReferralCode catches mistyped codes before any lookup.
func IsReferralCode(s string) bool {
	if len(s) != ReferralCodeLength {
		return false
	}
	return goluhn.Validate(s) == nil
}

func NewReferralCode() string {
	return goluhn.Generate(ReferralCodeLength)
}

func IsSortCode(s string) bool {
	return sortCodeRe.MatchString(s)
}

func IsAccountNumber(s string) bool {
	return accountNumberRe.MatchString(s)
}

// IsEmail is a shape check only; ownership is not verified.
func IsEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\r\n") && strings.Contains(s[at:], ".")
}
