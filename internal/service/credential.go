package service

import (
	"strings"

	"scrapedesk/internal/core/domain"
)

// Fields holds the operator's current input values, as typed.
type Fields struct {
	Username string
	Password string
	Pages    string
}

// CollectCredential trims and checks the credential fields. It is evaluated
// on every protected operation; nothing is cached between calls.
func CollectCredential(f Fields) (domain.Credential, error) {
	username := strings.TrimSpace(f.Username)
	password := strings.TrimSpace(f.Password)
	if username == "" || password == "" {
		return domain.Credential{}, &domain.ValidationError{
			Field:   "credentials",
			Message: "please enter username and password",
		}
	}
	return domain.Credential{Username: username, Password: password}, nil
}
