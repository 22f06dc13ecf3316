package models

import "time"

// Follow is a directed subscription edge from a reader to an author.
// The (follower, following) pair is unique at the storage layer so a
// concurrent duplicate insert resolves to exactly one surviving row.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}
