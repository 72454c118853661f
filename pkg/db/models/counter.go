package models

import "time"

// Counter backs the business-code generator. One row per (key, branch);
// seq only ever moves forward via an atomic upsert increment.
type Counter struct {
	Key       string    `gorm:"column:key;primaryKey" json:"key"`
	Branch    string    `gorm:"column:branch;primaryKey" json:"branch"`
	Seq       int64     `gorm:"column:seq;not null;default:0" json:"seq"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
