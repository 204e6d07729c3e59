package core

// Status classifies the session lifecycle.
//
// The machine starts in StatusUnknown, moves to StatusChecking while the
// startup rehydration is in flight, and then cycles between
// StatusAuthenticated and StatusUnauthenticated for the life of the
// process. There is no terminal status.
type Status int

const (
	StatusUnknown Status = iota
	StatusChecking
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// Session is the client's view of "who is logged in, is an auth call in
// flight, and what failed". Values are snapshots - consumers never share
// the store's internal state.
//
// Invariant: IsAuthenticated == (User != nil) after every transition.
type Session struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
	Status          Status `json:"-"`
}

// InitialSession is the snapshot a store starts from: nobody logged in,
// rehydration not yet resolved.
func InitialSession() Session {
	return Session{
		User:            nil,
		IsAuthenticated: false,
		IsLoading:       true,
		Status:          StatusUnknown,
	}
}
