package auth

// Role is the backend role attached to a user profile.
type Role struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// User is the profile record returned by the backend. The minimal shape
// (ID, Username, Email) comes inline with the credential exchange; the rest
// is filled by a relation-expanded profile fetch.
type User struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Confirmed  bool   `json:"confirmed"`
	Blocked    bool   `json:"blocked"`
	Role       *Role  `json:"role,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (u *User) IsAdmin() bool {
	if u == nil || u.Role == nil {
		return false
	}
	return u.Role.Name == "Admin" || u.Role.Type == "admin"
}
