package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Phone accepts E.164 numbers: a leading plus and 7 to 15 digits.
func Phone(value string) bool {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "+") {
		return false
	}
	digits := value[1:]
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
