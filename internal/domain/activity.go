package domain

// Activity identifies the kind of a forum log record. The integer values are
// stored in the logs table and must stay stable.
type Activity int16

const (
	ActivityFirstVisit    Activity = 1
	ActivityRegistration  Activity = 2
	ActivityLogin         Activity = 3
	ActivityLogout        Activity = 4
	ActivityCreateTopic   Activity = 5
	ActivityViewTopic     Activity = 6
	ActivityDeleteTopic   Activity = 7
	ActivityCreateComment Activity = 8
)

// Valid reports whether a is one of the known activity kinds.
func (a Activity) Valid() bool {
	return a >= ActivityFirstVisit && a <= ActivityCreateComment
}

func (a Activity) String() string {
	switch a {
	case ActivityFirstVisit:
		return "first_visit"
	case ActivityRegistration:
		return "registration"
	case ActivityLogin:
		return "login"
	case ActivityLogout:
		return "logout"
	case ActivityCreateTopic:
		return "create_topic"
	case ActivityViewTopic:
		return "view_topic"
	case ActivityDeleteTopic:
		return "delete_topic"
	case ActivityCreateComment:
		return "create_comment"
	default:
		return "unknown"
	}
}

// Server response codes recorded with log records.
const (
	StatusOK           = 200
	StatusCreated      = 201
	StatusNoContent    = 204
	StatusUnauthorized = 401
)

// Extra tags distinguishing the two create-comment cases.
const (
	// ExtraNewThread marks a new top-level comment on a topic.
	ExtraNewThread = "topic"
	// ExtraReply marks a reply to an existing comment.
	ExtraReply = "comment"
)
