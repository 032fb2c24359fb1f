package model

import (
	"time"

	"github.com/google/uuid"
)

// Criterion is one screening dimension. When Keywords is non-empty, a
// positive AI verdict only stands if one of them appears in the resume.
type Criterion struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
}

type Profile struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_profiles_user_name" json:"user_id"`
	Name        string      `gorm:"type:varchar(255);not null;uniqueIndex:idx_profiles_user_name" json:"name"`
	Description *string     `gorm:"type:text" json:"description,omitempty"`
	Criteria    []Criterion `gorm:"type:jsonb;serializer:json;not null" json:"criteria"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Profile) TableName() string {
	return "profiles"
}

// Keywords returns every criterion keyword, in order, without duplicates.
func (p *Profile) Keywords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range p.Criteria {
		for _, k := range c.Keywords {
			if _, ok := seen[k]; ok || k == "" {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
