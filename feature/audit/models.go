package audit

import "time"

// Action kinds recorded in the log.
const (
	ActionCreate = "Create"
	ActionUpdate = "Update"
	ActionDelete = "Delete"
)

// ActionLog is one append-only entry of the administrative audit trail.
type ActionLog struct {
	ActionID    uint      `gorm:"primaryKey;column:action_id" json:"action_id"`
	UserID      uint      `gorm:"column:user_id;index" json:"user_id"`
	ActionType  string    `gorm:"column:action_type;size:20" json:"action_type"`
	EntityType  string    `gorm:"column:entity_type;size:64" json:"entity_type"`
	Description string    `gorm:"column:description;size:512" json:"description"`
	Timestamp   time.Time `gorm:"column:timestamp" json:"timestamp"`
}

// TableName overrides the gorm default.
func (ActionLog) TableName() string {
	return "action_logs"
}
