package models

// LikeTarget represents the kind of content a like toggle applies to.
type LikeTarget string

const (
	PostTarget    LikeTarget = "post"
	CommentTarget LikeTarget = "comment"
)

// MembershipState describes the relationship of a user to a community.
type MembershipState string

const (
	NonMember      MembershipState = "non-member"
	PendingRequest MembershipState = "pending-request"
	Member         MembershipState = "member"
)
