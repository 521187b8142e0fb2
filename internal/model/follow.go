package model

import "errors"

// A follow is a directed edge from follower to followee; the follower sees
// the followee's messages in their feed. Edges are addressed by their id pair
// everywhere, so there is no struct for the row itself.
var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
