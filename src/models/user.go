package models

// User is the single account the tracker manages. There is no multi-user
// isolation; the server seeds one default user at startup.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	TOTPSecret   string `json:"-"`
	TOTPEnabled  bool   `json:"totpEnabled"`
}
