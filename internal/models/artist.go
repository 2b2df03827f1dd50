package models

// ArtistDB represents an artist row. Artists carry no owner column, so
// any authenticated caller may mutate them.
type ArtistDB struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// LikeArtistDB links a user to an artist they like. Deletable only by
// the owning user.
type LikeArtistDB struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"userId" db:"user_id"`
	ArtistID string `json:"artistId" db:"artist_id"`
}

// CreateArtistArgs are the arguments for createDbArtist.
type CreateArtistArgs struct {
	Name        string           `json:"name"`
	Description Optional[string] `json:"description"`
}

// UpdateArtistArgs are the arguments for updateDbArtist.
type UpdateArtistArgs struct {
	ID          string           `json:"id"`
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// DeleteArtistArgs are the arguments for deleteDbArtist.
type DeleteArtistArgs struct {
	ID string `json:"id"`
}

// CreateLikeArtistArgs are the arguments for createDbLikeArtist.
type CreateLikeArtistArgs struct {
	ArtistID string `json:"artistId"`
}

// DeleteLikeArtistArgs are the arguments for deleteDbLikeArtist.
type DeleteLikeArtistArgs struct {
	ID string `json:"id"`
}
