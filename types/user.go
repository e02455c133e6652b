package types

// User represents a registered account.
type User struct {
	// ID is assigned by the store on insert and never changes.
	ID int64 `json:"id" db:"id"`

	// Username is unique and is the only lookup key for authentication.
	Username string `json:"username" db:"username"`

	// Email is captured at registration. It is neither validated nor unique,
	// and is empty for rows created before the column existed.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the digest of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`
}
