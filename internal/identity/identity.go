package identity

import (
	"strings"

	"github.com/google/uuid"

	"bingo-cli/internal/model"
)

const anonymousUsername = "Anonymous User"

// IsAnonymous classifies a user as an anonymous session.
//
// Rules (any match):
// - authProvider is "anonymous"
// - username is exactly "Anonymous User"
// - username starts with "Anonymous"
//
// The prefix rule is a heuristic carried over from the server's naming scheme
// ("Anonymous User 1234"); a real account whose name happens to start with
// "Anonymous" is misclassified. Kept as-is until the server exposes a flag.
func IsAnonymous(u *model.User) bool {
	if u == nil {
		return false
	}
	if strings.TrimSpace(u.AuthProvider) == "anonymous" {
		return true
	}
	if u.Username == anonymousUsername {
		return true
	}
	return strings.HasPrefix(u.Username, "Anonymous")
}

// DisplayName is what the status line shows for the current session.
func DisplayName(u *model.User) string {
	if u == nil {
		return "not signed in"
	}
	name := strings.TrimSpace(u.Username)
	if name == "" {
		return anonymousUsername
	}
	return name
}

// NewSessionID mints a client-side id for anonymous sessions so the server can
// correlate requests from the same browser-less client.
func NewSessionID() string {
	return "anon-" + uuid.NewString()
}
