package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses and localized
// messages.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrGroupNotFound     = errors.New("group not found")
	ErrAlreadyMember     = errors.New("already a member of this group")
	ErrNotMember         = errors.New("not a member of this group")
	ErrNotOwner          = errors.New("only the group owner can do this")
	ErrCannotRemoveSelf  = errors.New("owner cannot remove themselves")
	ErrCannotRemoveOwner = errors.New("cannot remove a group owner")
	ErrMemberNotFound    = errors.New("member not found in group")

	ErrInviteInvalid = errors.New("invalid or expired invitation")

	ErrRuleNotFound = errors.New("rule not found")

	ErrPostNotFound      = errors.New("post not found")
	ErrNotAuthor         = errors.New("only the author can modify this post")
	ErrOwnPostConfession = errors.New("cannot confess to your own post")
	ErrConfessionExpired = errors.New("confession window has elapsed")
	ErrAlreadyConfessed  = errors.New("already confessed to this post")

	ErrFileTooLarge       = errors.New("file too large")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)
