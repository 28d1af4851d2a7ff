package models

import "time"

type ItemStatus string

const (
	ItemStatusTodo       ItemStatus = "todo"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusDone       ItemStatus = "done"
)

// Valid reports whether s is one of the known statuses. Any status may move to any other.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusTodo, ItemStatusInProgress, ItemStatusDone:
		return true
	}
	return false
}

type ItemPriority string

const (
	ItemPriorityLow    ItemPriority = "low"
	ItemPriorityMedium ItemPriority = "medium"
	ItemPriorityHigh   ItemPriority = "high"
)

func (p ItemPriority) Valid() bool {
	switch p {
	case ItemPriorityLow, ItemPriorityMedium, ItemPriorityHigh:
		return true
	}
	return false
}

type Item struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	UserID      uint64       `gorm:"not null;index" json:"userId"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Status      ItemStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority    ItemPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	CreatedAt   time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
