package validators

import "regexp"

var (
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// IsPhoneValid accepts international numbers in E.164 form, optional
// leading plus.
func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsZipValid accepts US ZIP and ZIP+4.
func IsZipValid(zip string) bool {
	return zipRe.MatchString(zip)
}
