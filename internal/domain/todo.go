package domain

import "time"

// MaxDescriptionLength is the storage cap for TodoItem descriptions.
const MaxDescriptionLength = 100

// TodoItem is the sole entity of the service, mapped one-to-one onto the
// todo_items table. The JSON tags define the wire shape consumed by the
// front-end; all persisted timestamps are UTC.
type TodoItem struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description" gorm:"size:100"`
	DueDate       time.Time  `json:"dueDate" gorm:"not null"`
	CompletedDate *time.Time `json:"completedDate"`
	IsCompleted   bool       `json:"isCompleted" gorm:"not null;default:false"`
}

func (TodoItem) TableName() string {
	return "todo_items"
}

// NormalizeTimestamps converts DueDate and, when set, CompletedDate to UTC.
// Rows never carry local-time-zone timestamps.
func (t *TodoItem) NormalizeTimestamps() {
	t.DueDate = t.DueDate.UTC()
	if t.CompletedDate != nil {
		utc := t.CompletedDate.UTC()
		t.CompletedDate = &utc
	}
}
