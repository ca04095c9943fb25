package models

import "time"

// Follow is a directed subscription edge: UserID follows AuthorID.
// Both invariants (one edge per pair, no self-follow) live at the data
// layer, not only in the handlers.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"index;uniqueIndex:idx_user_author;check:chk_no_self_follow,user_id <> author_id" json:"user_id"`
	AuthorID uint `gorm:"index;uniqueIndex:idx_user_author" json:"author_id"`

	User   User `gorm:"foreignKey:UserID" json:"user"`
	Author User `gorm:"foreignKey:AuthorID" json:"author"`

	CreatedAt time.Time `json:"created_at"`
}
