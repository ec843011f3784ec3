package types

// User represents an account in the system. The JSON tags double as the
// persisted schema of the users file, so PasswordHash serializes under the
// "password" key there; API responses must go through Public() so the hash
// never leaves the process.
type User struct {
	// ID is the unique identifier of the user. Assigned once, never reused.
	ID int `json:"id"`

	// Email is the user's email address, unique across all records.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password. Empty for
	// accounts created through Google sign-in that never set a password.
	PasswordHash string `json:"password,omitempty"`

	// Profile attributes, free-form and optional.
	Name      string `json:"name,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Address   string `json:"address,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// Classification attributes, opaque to the store.
	Usertype        string `json:"usertype,omitempty"`
	LevelExperiency string `json:"levelexperiency,omitempty"`
	TimeRequired    string `json:"timerequired,omitempty"`
	Diet            string `json:"diet,omitempty"`
	Subscription    string `json:"subscription,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`

	// FavoriteExerciseIDs holds the user's favorite exercises in insertion
	// order. Absent until the first toggle.
	FavoriteExerciseIDs []int `json:"favoriteExerciseIds,omitempty"`
}

// Public returns a copy of the user safe for API responses: the password
// hash is cleared and, being omitempty, drops out of the encoded payload.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
