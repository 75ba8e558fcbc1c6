package dbschema

import "time"

// BaseModel carries the columns shared by every schema entity.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
