package user

import (
	"regexp"
	"strings"

	"github.com/adotefacil/service-adoption/pkg/domain"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	// Go's regexp (RE2) has no backreferences, so `^(\d)\1{10}$` is spelled
	// out as an alternation over each digit repeated eleven times.
	repeatedCPFRe  = regexp.MustCompile(`^(?:0{11}|1{11}|2{11}|3{11}|4{11}|5{11}|6{11}|7{11}|8{11}|9{11})$`)
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	emailDomainRe  = regexp.MustCompile(`(?i)@(outlook|gmail|hotmail|yahoo|icloud|example|test)\.`)
	lowerRe        = regexp.MustCompile(`[a-z]`)
	upperRe        = regexp.MustCompile(`[A-Z]`)
	digitRe        = regexp.MustCompile(`\d`)
	specialRe      = regexp.MustCompile(`[@$!%*?&]`)
	passwordFullRe = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
)

// ValidCPF checks a Brazilian CPF number (eleven digits with two check
// digits). Formatting characters are stripped before validation.
func ValidCPF(cpf string) bool {
	clean := nonDigitRe.ReplaceAllString(cpf, "")
	if len(clean) != 11 {
		return false
	}
	if repeatedCPFRe.MatchString(clean) {
		return false
	}

	if checkDigit(clean, 9) != int(clean[9]-'0') {
		return false
	}
	return checkDigit(clean, 10) == int(clean[10]-'0')
}

// checkDigit computes the CPF check digit over the first n digits.
func checkDigit(cpf string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(cpf[i]-'0') * (n + 1 - i)
	}
	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return remainder
}

// ValidEmail checks the address shape and requires one of the allow-listed
// provider domains.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email) && emailDomainRe.MatchString(email)
}

// ValidatePassword enforces the password policy: at least eight characters
// with a lower-case letter, an upper-case letter, a digit and one of the
// special characters @$!%*?&.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.NewValidationError("password must be at least 8 characters long")
	}
	if !lowerRe.MatchString(password) {
		return domain.NewValidationError("password must contain a lower-case letter")
	}
	if !upperRe.MatchString(password) {
		return domain.NewValidationError("password must contain an upper-case letter")
	}
	if !digitRe.MatchString(password) {
		return domain.NewValidationError("password must contain a digit")
	}
	if !specialRe.MatchString(password) {
		return domain.NewValidationError("password must contain a special character: @$!%*?&")
	}
	if !passwordFullRe.MatchString(password) {
		return domain.NewValidationError("password contains characters outside the allowed set")
	}
	return nil
}

// NormalizeCPF strips formatting characters from a CPF for storage.
func NormalizeCPF(cpf string) string {
	return strings.TrimSpace(nonDigitRe.ReplaceAllString(cpf, ""))
}
