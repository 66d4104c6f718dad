// Package staff holds the demo staff directory and the login flow. This is a
// demonstration system: the four accounts and their passwords are fixed and
// documented, not managed.
package staff

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidCredentials is returned on a failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// User is a staff member.
type User struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Speciality string `json:"speciality,omitempty"`
}

type account struct {
	User
	password string
}

var directory = []account{
	{
		User: User{
			Username:   "dr.sow",
			FirstName:  "Amadou",
			LastName:   "Sow",
			Role:       "doctor",
			Department: "cardiology",
			Speciality: "Cardiologue",
		},
		password: "doctor123",
	},
	{
		User: User{
			Username:  "hr.diop",
			FirstName: "Fatou",
			LastName:  "Diop",
			Role:      "hr",
		},
		password: "hr123",
	},
	{
		User: User{
			Username:  "reception.ba",
			FirstName: "Aïssatou",
			LastName:  "Ba",
			Role:      "reception",
		},
		password: "reception123",
	},
	{
		User: User{
			Username:  "cashier.ndiaye",
			FirstName: "Cheikh",
			LastName:  "Ndiaye",
			Role:      "cashier",
		},
		password: "cashier123",
	},
}

// Authenticate checks the credentials against the directory.
func Authenticate(username, password string) (User, error) {
	for _, a := range directory {
		if a.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1 {
			return a.User, nil
		}
		break
	}
	return User{}, ErrInvalidCredentials
}

// Lookup returns the user with the given username.
func Lookup(username string) (User, bool) {
	for _, a := range directory {
		if a.Username == username {
			return a.User, true
		}
	}
	return User{}, false
}

// List returns all staff members, without credentials.
func List() []User {
	out := make([]User, len(directory))
	for i, a := range directory {
		out[i] = a.User
	}
	return out
}
