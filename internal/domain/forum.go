package domain

// User is a registered forum user. IDs are assigned by storage on insert.
type User struct {
	ID   int64
	Name string
}

// Topic is a discussion thread owned by a registered user.
type Topic struct {
	ID     int64
	Name   string
	UserID int64
}

// Comment is a message on a topic. UserID is nil for anonymous comments.
// ParentID references another comment on the same topic for replies; the
// generator never nests deeper than one level.
type Comment struct {
	ID       int64
	UserID   *int64
	TopicID  int64
	ParentID *int64
	Text     string
}
