package domain

import "encoding/json"

// UserContext is the session descriptor consumed by the permission gate.
// It is always passed explicitly; nothing in this codebase reads session
// state ambiently.
type UserContext struct {
	Role     string `json:"role"`
	Position string `json:"position"`
}

// Anonymous is the zero descriptor: no role, no position.
func Anonymous() UserContext {
	return UserContext{}
}

// IsAnonymous reports whether the descriptor carries no identity at all.
func (u UserContext) IsAnonymous() bool {
	return u.Role == "" && u.Position == ""
}

// ParseUserContext decodes a stored session descriptor. Malformed or empty
// payloads resolve to anonymous, never to an error (fail-closed).
func ParseUserContext(raw []byte) UserContext {
	if len(raw) == 0 {
		return Anonymous()
	}

	var u UserContext
	if err := json.Unmarshal(raw, &u); err != nil {
		return Anonymous()
	}
	return u
}
