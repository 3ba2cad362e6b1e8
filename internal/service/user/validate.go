package user

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Message keys produced by the per-field rules. Localization happens at the
// HTTP layer.
const (
	KeyUsernameNull    = "username_null"
	KeyUsernameSize    = "username_size"
	KeyEmailNull       = "email_null"
	KeyEmailInvalid    = "email_invalid"
	KeyEmailInUse      = "email_inuse"
	KeyPasswordNull    = "password_null"
	KeyPasswordSize    = "password_size"
	KeyPasswordPattern = "password_pattern"
)

const (
	usernameMinLen = 4
	usernameMaxLen = 32
	passwordMinLen = 6
)

// FieldError pairs a payload field with the message key of its first failing
// rule.
type FieldError struct {
	Field string
	Key   string
}

// validateUsername applies required then size. Empty key means pass.
func validateUsername(value string) string {
	if value == "" {
		return KeyUsernameNull
	}
	if n := utf8.RuneCountInString(value); n < usernameMinLen || n > usernameMaxLen {
		return KeyUsernameSize
	}
	return ""
}

// validateEmail applies required then format.
func validateEmail(value string) string {
	if value == "" {
		return KeyEmailNull
	}
	if !isValidEmail(value) {
		return KeyEmailInvalid
	}
	return ""
}

// validatePassword applies required, then size, then the character-class
// pattern: at least one lowercase letter, one uppercase letter, one digit.
func validatePassword(value string) string {
	if value == "" {
		return KeyPasswordNull
	}
	if utf8.RuneCountInString(value) < passwordMinLen {
		return KeyPasswordSize
	}
	var lower, upper, digit bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return KeyPasswordPattern
	}
	return ""
}

// isValidEmail accepts bare addr-spec addresses with a dotted domain. Display
// names and source routing count as invalid.
func isValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	if at < 0 {
		return false
	}
	domain := value[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
