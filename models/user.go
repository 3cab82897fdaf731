package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a player on the trip with a bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Username  string    `bun:"username,notnull,unique" json:"username"`
	Password  string    `bun:"password,notnull" json:"-"`
	Name      string    `bun:"name,notnull,default:''" json:"name"`
	Surname   string    `bun:"surname,notnull,default:''" json:"surname"`
	Email     string    `bun:"email,notnull,default:''" json:"email"`
	Handicap  float64   `bun:"handicap,notnull" json:"handicap"`
	IsAdmin   bool      `bun:"is_admin,notnull,default:false" json:"isAdmin"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// FullName is the display name used on leaderboards.
func (u *User) FullName() string {
	switch {
	case u.Name == "" && u.Surname == "":
		return u.Username
	case u.Surname == "":
		return u.Name
	default:
		return u.Name + " " + u.Surname
	}
}
