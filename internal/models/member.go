package models

// Member is a row of members, owned by the membership service.
type Member struct {
	MemberID string `db:"member_id"`
	Name     string `db:"name"`
	Role     string `db:"role"`
	Status   string `db:"status"`
}
