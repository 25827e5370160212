package models

import "time"

// User represents an application user stored in the users table.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	University   string     `db:"university" json:"university"`
	Gender       string     `db:"gender" json:"gender"`
	Nationality  string     `db:"nationality" json:"nationality"`
	Phone        string     `db:"phone" json:"phone"`
	ProfileImage string     `db:"profile_image" json:"profileImage"`
	HasPaid      bool       `db:"has_paid" json:"hasPaid"`
	LastSeenAt   *time.Time `db:"last_seen_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// OnlineAt reports whether the user's last heartbeat is recent enough to
// count as online.
func (u *User) OnlineAt(now time.Time, staleness time.Duration) bool {
	if u.LastSeenAt == nil {
		return false
	}
	return now.Sub(*u.LastSeenAt) <= staleness
}

// PeerUser is the roster view of another user returned to clients.
type PeerUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	IsOnline     bool   `json:"isOnline"`
	University   string `json:"university"`
	ProfileImage string `json:"profileImage"`
}

// ChatUser is the minimal identity forwarded to the hosted chat surface.
type ChatUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsOnline bool   `json:"isOnline"`
}

// ChatRosterResponse bundles the peer roster with a chat token minted for
// the caller.
type ChatRosterResponse struct {
	Users     []ChatUser `json:"users"`
	ChatToken string     `json:"chatToken"`
}
