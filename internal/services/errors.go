// Package services holds the matching and relationship engine: the symmetric
// connection graph and the friend-request state machine.
package services

import "errors"

// Engine error taxonomy. Validation, not-found, forbidden and conflict
// errors are recoverable by the caller; ErrStoreUnavailable means the
// relational transaction failed and nothing was applied.
var (
	ErrSelfConnection = errors.New("classroom cannot connect to itself")
	ErrSelfRequest    = errors.New("classroom cannot send a friend request to itself")

	ErrClassroomNotFound = errors.New("classroom not found")
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrNotConnected      = errors.New("no connection exists between these classrooms")

	ErrForbidden = errors.New("classroom is not a party to this resource")

	ErrAlreadyConnected = errors.New("classrooms are already connected")
	ErrAlreadyFriends   = errors.New("classrooms are already friends")
	ErrDuplicatePending = errors.New("a pending friend request already exists")
	ErrAlreadyResolved  = errors.New("friend request has already been resolved")

	ErrStoreUnavailable = errors.New("relational store unavailable")
)
