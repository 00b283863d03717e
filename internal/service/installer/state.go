package installer

import "strings"

// Intermediate keys that drive branching but are not written to .env.
const (
	keyChannel = "CONDO_CHAT_CHANNEL"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

// Is reports whether key holds value, ignoring case.
func (s *InstallState) Is(key, value string) bool {
	return strings.EqualFold(s.EnvVars[key], value)
}
