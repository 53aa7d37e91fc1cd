package models

import "carebook/src/types"

// Service is a catalog entry. ServiceID is the dense public identifier
// minted from the counters table; the gorm primary key stays internal.
type Service struct {
	ID          uint                  `gorm:"primarykey" json:"id"`
	ServiceID   uint                  `gorm:"uniqueIndex" json:"service_id"`
	Name        string                `json:"name"`
	Slug        string                `gorm:"index" json:"slug,omitempty"`
	Category    types.ServiceCategory `json:"category"`
	Description string                `json:"description,omitempty"`
	Rate        float64               `json:"rate"`
	RateUnit    types.RateUnit        `json:"rate_unit"`
	Features    types.JSONBArray      `gorm:"type:jsonb" json:"features,omitempty"`
	IsActive    bool                  `gorm:"default:true" json:"is_active"`
	Popularity  uint                  `json:"popularity"`

	types.Timestamps
}
