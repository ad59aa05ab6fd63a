package model

// Account is a persisted login record. PasswordDigest is a hex-encoded
// one-way digest; plaintext passwords are never stored.
type Account struct {
	Email          string `json:"email"`
	PasswordDigest string `json:"password_digest"`
}
