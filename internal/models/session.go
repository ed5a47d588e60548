package models

// Identity addresses a cart owner. Exactly one of UserID or GuestID is
// meaningful at a time; the session middleware never populates both.
type Identity struct {
	UserID  string
	GuestID string
}

func UserIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

func GuestIdentity(guestID string) Identity {
	return Identity{GuestID: guestID}
}

// Key returns the storage key component for this identity.
func (i Identity) Key() string {
	if i.UserID != "" {
		return i.UserID
	}
	return i.GuestID
}

func (i Identity) Valid() bool {
	return (i.UserID != "") != (i.GuestID != "")
}

// SessionContext carries the per-request session state resolved by the
// session middleware: the browser session key and the cart identity. It is
// built once per request and passed down explicitly, never read from a
// package-level singleton.
type SessionContext struct {
	SessionKey string
	Identity   Identity
}

// User is the account record the commerce backend returns on login and
// registration. The gateway stores nothing about users itself.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
