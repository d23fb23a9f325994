package domain

import "context"

// User is a login identity. Users are created out-of-band (there is no
// signup endpoint); the recorder only ever reads them during login.
type User struct {
	ID   int64
	Name string
	// Pass is stored and compared in plain text. Known security defect;
	// existing stored credentials rule out hashing without a migration.
	Pass string
}

type UserRepository interface {
	GetByName(ctx context.Context, name string) (*User, error)
	Create(ctx context.Context, name, pass string) (*User, error)
}
