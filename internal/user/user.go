package user

import "time"

// User is an account known to the sandbox backend.
type User struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	FullName  string    `json:"fullName"`
	NomorHp   string    `json:"nomorHp"`
	Jurusan   string    `json:"jurusan"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

func sanitizeUser(user User) User {
	user.Password = ""
	return user
}
