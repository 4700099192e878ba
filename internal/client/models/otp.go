package models

import (
	"fmt"
	"strings"
)

// OTPLength is the number of digits in a verification code.
const OTPLength = 6

// OTPCode holds one cell per digit. Every cell is empty or a single
// decimal digit.
type OTPCode [OTPLength]string

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Set edits cell i. Values made only of digits are accepted and cut to
// their first character; an empty value clears the cell. Anything else is
// rejected and the cell keeps its previous content.
func (c *OTPCode) Set(i int, value string) bool {
	if i < 0 || i >= OTPLength || !isDigits(value) {
		return false
	}
	if value != "" {
		value = value[:1]
	}
	c[i] = value
	return true
}

// String concatenates the cells into the code sent to the server.
func (c OTPCode) String() string {
	return strings.Join(c[:], "")
}

// Complete reports whether every cell holds a digit.
func (c OTPCode) Complete() bool {
	for _, d := range c {
		if d == "" {
			return false
		}
	}
	return true
}

// ParseOTPCode builds a code from a line typed at a prompt.
func ParseOTPCode(s string) (OTPCode, error) {
	var c OTPCode
	s = strings.TrimSpace(s)
	if len(s) != OTPLength || !isDigits(s) {
		return c, fmt.Errorf("code must be %d digits", OTPLength)
	}
	for i := 0; i < OTPLength; i++ {
		c[i] = s[i : i+1]
	}
	return c, nil
}
