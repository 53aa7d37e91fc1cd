package models

// Counter backs dense id assignment (service ids). Incremented under a row
// lock so concurrent creates never mint the same value.
type Counter struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"uniqueIndex" json:"name"`
	Value uint   `json:"value"`
}
