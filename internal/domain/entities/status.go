package entities

// ApprovalStatus represents the moderation state of an investor, rating or log
type ApprovalStatus string

const (
	StatusPendingApproval ApprovalStatus = "PENDING_APPROVAL"
	StatusApproved        ApprovalStatus = "APPROVED"
	StatusRejected        ApprovalStatus = "REJECTED"
)

// IsPublic reports whether an entity with this status is shown in public
// ranking views. The activity feed has a wider rule, see Log.FeedVisible.
func (s ApprovalStatus) IsPublic() bool {
	return s == StatusApproved
}

// IsTerminal reports whether the status is a moderation end state
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Valid reports whether the value is a known approval status
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}
