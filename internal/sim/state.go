package sim

import (
	"math/rand/v2"
	"slices"
	"time"
)

// State is the cumulative working set of one simulation run: known users,
// open topics, comments per topic, cookie assignments, the logged-in set and
// per-user last-action times. It is carried across simulated days; only
// LastAction is rebuilt at each day boundary.
//
// Phases receive the state by pointer and mutate it directly. There is
// exactly one writer, so no locking.
type State struct {
	UserIDs    []int64
	OpenTopics []int64
	CommentIDs map[int64][]int64 // topic id -> comment ids, in creation order
	Cookies    map[int64]string  // user id -> visitor token
	LoggedIn   []int64
	LastAction map[int64]time.Time
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		CommentIDs: make(map[int64][]int64),
		Cookies:    make(map[int64]string),
		LastAction: make(map[int64]time.Time),
	}
}

// ResetDay rebuilds the last-action map so that every known user starts the
// simulated day at dayStart. Identities, topics, cookies and the logged-in
// set carry over untouched.
func (s *State) ResetDay(dayStart time.Time) {
	s.LastAction = make(map[int64]time.Time, len(s.UserIDs))
	for _, id := range s.UserIDs {
		s.LastAction[id] = dayStart
	}
}

// AddUser registers a new user identity with its cookie and the timestamp of
// its registration.
func (s *State) AddUser(id int64, cookie string, registeredAt time.Time) {
	s.UserIDs = append(s.UserIDs, id)
	s.Cookies[id] = cookie
	s.LastAction[id] = registeredAt
}

// CookieFor returns the user's visitor token, lazily allocating one if the
// user has never been issued a cookie.
func (s *State) CookieFor(id int64, rng *rand.Rand) string {
	if c, ok := s.Cookies[id]; ok {
		return c
	}
	c := NewCookie(rng)
	s.Cookies[id] = c
	return c
}

// IsLoggedIn reports whether the user is currently in the logged-in set.
func (s *State) IsLoggedIn(id int64) bool {
	return slices.Contains(s.LoggedIn, id)
}

// NotLoggedIn returns the known users that are not currently logged in.
func (s *State) NotLoggedIn() []int64 {
	var out []int64
	for _, id := range s.UserIDs {
		if !s.IsLoggedIn(id) {
			out = append(out, id)
		}
	}
	return out
}

// Login adds the user to the logged-in set. A user already logged in is not
// added twice.
func (s *State) Login(id int64) {
	if !s.IsLoggedIn(id) {
		s.LoggedIn = append(s.LoggedIn, id)
	}
}

// Logout removes the user from the logged-in set.
func (s *State) Logout(id int64) {
	if i := slices.Index(s.LoggedIn, id); i >= 0 {
		s.LoggedIn = slices.Delete(s.LoggedIn, i, i+1)
	}
}

// OpenTopic adds a topic to the open set.
func (s *State) OpenTopic(id int64) {
	s.OpenTopics = append(s.OpenTopics, id)
}

// CloseTopic removes a topic from the open set. Its comment history is kept
// for the record, but the topic can no longer be targeted.
func (s *State) CloseTopic(id int64) {
	if i := slices.Index(s.OpenTopics, id); i >= 0 {
		s.OpenTopics = slices.Delete(s.OpenTopics, i, i+1)
	}
}

// AddComment registers a comment id under its topic for future reply targeting.
func (s *State) AddComment(topicID, commentID int64) {
	s.CommentIDs[topicID] = append(s.CommentIDs[topicID], commentID)
}

// pickRandom returns a uniformly random element of a non-empty slice.
func pickRandom[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
