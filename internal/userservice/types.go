package userservice

import (
	"database/sql"
	"time"

	"github.com/hazelko/inkpost/internal/common"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserService struct {
	m          *userModel
	mb         common.MessageProducer
	adminEmail string
}

type userModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// UserCreatedEvent is the payload published on the user.created binding key.
type UserCreatedEvent struct {
	Email string
}
