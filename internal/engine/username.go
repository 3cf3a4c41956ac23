package engine

import (
	"regexp"

	"github.com/robertjbass/spindb/internal/spinerr"
)

// UsernameRegexp is the username validator from spec.md §4.D, used by
// create_user; the credential store applies the same pattern
// (credentials.UsernameRegexp) before any filename is derived from a
// username.
var UsernameRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,62}$`)

// ValidateUsername returns an InvalidInput error unless username matches
// UsernameRegexp.
func ValidateUsername(username string) error {
	if !UsernameRegexp.MatchString(username) {
		return spinerr.New(spinerr.InvalidInput, "invalid username: "+username)
	}
	return nil
}
