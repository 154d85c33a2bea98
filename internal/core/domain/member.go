package domain

// Role is the identity role of an operator or member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// MemberStatus mirrors the identity service's member lifecycle.
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

// Member is the slice of identity data the ledger reads. Members are managed elsewhere.
type Member struct {
	MemberID string       `json:"memberID"`
	Name     string       `json:"name"`
	Role     Role         `json:"role"`
	Status   MemberStatus `json:"status"`
}
