package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Creation type tags, used for display/filtering on the client.
const (
	TypeArticle      = "article"
	TypeBlogTitle    = "blog-title"
	TypeImage        = "image"
	TypeReviewResume = "review-resume"
)

// Creation is one persisted AI-generation record. Rows are append-only:
// nothing updates them after insert except the like toggle.
type Creation struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);index:idx_creation_user_created;not null"`
	Prompt    string    `json:"prompt" gorm:"type:text"`
	Content   string    `json:"content" gorm:"type:text"`
	Type      string    `json:"type" gorm:"type:varchar(16);index"`
	Publish   bool      `json:"publish" gorm:"index;default:false"`
	Likes     StringSet `json:"likes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_creation_user_created"`
}

func (Creation) TableName() string { return "creations" }

// Liked reports whether userID is in the like set.
func (c *Creation) Liked(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// StringSet is a set of user ids stored as a JSON array in a single text
// column. Order is irrelevant; Add keeps entries unique.
type StringSet []string

func (s StringSet) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Add returns the set with v appended, or the set unchanged if present.
func (s StringSet) Add(v string) StringSet {
	if s.Contains(v) {
		return s
	}
	return append(s, v)
}

// Remove returns the set without v.
func (s StringSet) Remove(v string) StringSet {
	out := make(StringSet, 0, len(s))
	for _, e := range s {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(src any) error {
	if src == nil {
		*s = StringSet{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported likes column type %T", src)
	}
	if len(data) == 0 {
		*s = StringSet{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}
