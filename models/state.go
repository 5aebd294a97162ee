package models

import "time"

// StateEntry 键值状态表，替代浏览器本地存储
type StateEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName 表名
func (StateEntry) TableName() string { return "state_entries" }
