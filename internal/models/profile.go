package models

// UserProfileDB represents a user profile row. The primary key is the
// caller identity itself: one profile per authenticated subject.
type UserProfileDB struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Age         int         `json:"age" db:"age"`
	Bio         *string     `json:"bio" db:"bio"`
	Instruments StringSlice `json:"instruments" db:"instruments"`
}

// CreateUserProfileArgs are the arguments for createDbUserProfile.
// The profile id is never taken from the client; it is always the
// authenticated subject.
type CreateUserProfileArgs struct {
	Name        string           `json:"name"`
	Age         int              `json:"age"`
	Bio         Optional[string] `json:"bio"`
	Instruments StringSlice      `json:"instruments"`
}

// UpdateUserProfileArgs are the arguments for updateDbUserProfile.
// Every field is a partial-patch optional.
type UpdateUserProfileArgs struct {
	Name        Optional[string]      `json:"name"`
	Age         Optional[int]         `json:"age"`
	Bio         Optional[string]      `json:"bio"`
	Instruments Optional[StringSlice] `json:"instruments"`
}
