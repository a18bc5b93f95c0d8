package models

// Roles a session token may assert. Anything other than RoleAdmin is
// treated as a regular user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserProfile represents the authenticated person as stored in the users
// collection. Role is embedded into the session token at issuance and
// trusted verbatim by the access gate afterwards.
type UserProfile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        string `json:"-"`
}
