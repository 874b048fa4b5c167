package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PostStatus is the moderation state of a community post.
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

// PostCategory is one of the eight fixed community post categories.
type PostCategory string

const (
	PostCategoryBudgeting PostCategory = "budgeting"
	PostCategorySaving    PostCategory = "saving"
	PostCategoryInvesting PostCategory = "investing"
	PostCategoryDebt      PostCategory = "debt"
	PostCategoryCareer    PostCategory = "career"
	PostCategoryStudent   PostCategory = "student"
	PostCategoryEmergency PostCategory = "emergency"
	PostCategoryGeneral   PostCategory = "general"
)

// Tags stores a post's tag set as a JSON array column so it works on both
// postgres and the in-memory sqlite used by tests.
type Tags []string

// Value implements driver.Valuer, serializing tags to JSON.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner, deserializing tags from JSON.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	default:
		return fmt.Errorf("cannot scan %T into Tags", value)
	}
}

// FinancePost is a community tip post. Posts are created as pending by any
// authenticated user and transition to approved or rejected only through an
// admin. Likes and views only ever increase.
type FinancePost struct {
	Base
	Title           string       `gorm:"not null" json:"title"`
	Content         string       `gorm:"not null" json:"content"`
	Category        PostCategory `gorm:"not null" json:"category"`
	Tags            Tags         `gorm:"type:text" json:"tags"`
	AuthorID        string       `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName      string       `gorm:"not null" json:"author_name"`
	Status          PostStatus   `gorm:"not null;default:pending;index" json:"status"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	ApprovedBy      string       `json:"approved_by,omitempty"`
	Likes           int64        `gorm:"default:0" json:"likes"`
	Views           int64        `gorm:"default:0" json:"views"`
	Featured        bool         `gorm:"default:false" json:"featured"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
}

// UserContribution is a per-user rollup of community activity, incremented
// as a side effect of post lifecycle events.
type UserContribution struct {
	Base
	UserID           string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalSubmissions int64  `gorm:"default:0" json:"total_submissions"`
	ApprovedPosts    int64  `gorm:"default:0" json:"approved_posts"`
	TotalLikes       int64  `gorm:"default:0" json:"total_likes"`
}
