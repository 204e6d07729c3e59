package core

import "time"

// User represents an infopadd member as the platform reports them.
//
// This is the client's cached copy - the Users service owns the record.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Bio         *string   `json:"bio,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	Stats       UserStats `json:"stats"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserStats is the counters sub-record shown on profile screens.
type UserStats struct {
	Entries   int `json:"entries"`
	Points    int `json:"points"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// StatsUpdate is a partial update of UserStats. Nil fields are left
// untouched by the merge.
type StatsUpdate struct {
	Entries   *int `json:"entries,omitempty"`
	Points    *int `json:"points,omitempty"`
	Followers *int `json:"followers,omitempty"`
	Following *int `json:"following,omitempty"`
}

// Merge applies the non-nil fields onto s and returns the result.
func (u StatsUpdate) Merge(s UserStats) UserStats {
	if u.Entries != nil {
		s.Entries = *u.Entries
	}
	if u.Points != nil {
		s.Points = *u.Points
	}
	if u.Followers != nil {
		s.Followers = *u.Followers
	}
	if u.Following != nil {
		s.Following = *u.Following
	}
	return s
}

// ProfileUpdate is a partial update of the editable profile fields.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// RegisterInput contains the data needed to register a new member.
//
// Confirm-password equality is a form concern and is checked by the
// caller before the operation is dispatched.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Login is what a successful sign-in shaped call returns: the member and
// the raw session token the client persists for rehydration.
type Login struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Article is a platform article passed through from the Articles service.
// The client applies no business rules to it.
type Article struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CoverURL    *string   `json:"coverUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Entry is a feed entry passed through from the Entries service.
type Entry struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	ArticleID *string   `json:"articleId,omitempty"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntryInput contains the data needed to publish a new entry.
type EntryInput struct {
	Text      string  `json:"text"`
	ArticleID *string `json:"articleId,omitempty"`
}
