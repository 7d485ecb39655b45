package models

import "time"

// Cycle statuses. A cycle moves Pending -> Completed exactly once;
// Completed is terminal.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// CycleCount is the header row of one physical inventory audit.
type CycleCount struct {
	CycleCountID uint   `gorm:"primaryKey;column:cycle_count_id" json:"cycle_count_id"`
	CycleName    string `gorm:"column:cycle_name;size:20;uniqueIndex" json:"cycle_name"`
	// StartDate and EndDate bound the calendar quarter the count covers.
	StartDate   time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time  `gorm:"column:end_date" json:"end_date"`
	Status      string     `gorm:"column:status;size:20;index" json:"status"`
	CreatedBy   uint       `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	FinalizedBy *uint      `gorm:"column:finalized_by" json:"finalized_by,omitempty"`
	FinalizedAt *time.Time `gorm:"column:finalized_at" json:"finalized_at,omitempty"`
}

// TableName overrides the gorm default.
func (CycleCount) TableName() string {
	return "cycle_counts"
}

// CycleCountDetail is one product's line in a cycle. SystemQuantity is the
// snapshot taken when the cycle started and never changes afterwards.
// CountedQuantity stays nil until staff record a physical count.
type CycleCountDetail struct {
	DetailID        uint       `gorm:"primaryKey;column:detail_id" json:"detail_id"`
	CycleCountID    uint       `gorm:"column:cycle_count_id;index" json:"cycle_count_id"`
	ProductID       uint       `gorm:"column:product_id;index" json:"product_id"`
	SystemQuantity  int        `gorm:"column:system_quantity" json:"system_quantity"`
	CountedQuantity *int       `gorm:"column:counted_quantity" json:"counted_quantity,omitempty"`
	RecordedBy      *uint      `gorm:"column:recorded_by" json:"recorded_by,omitempty"`
	RecordedAt      *time.Time `gorm:"column:recorded_at" json:"recorded_at,omitempty"`
	// Version guards repeated recounts of the same detail row: an update
	// only lands when the version it read is still current.
	Version int `gorm:"column:version;default:0" json:"version"`
}

// TableName overrides the gorm default.
func (CycleCountDetail) TableName() string {
	return "cycle_count_details"
}

// CycleCountAdjustment is the audit trail of one reconciled product: what
// the system said, what was counted, and the variance applied to inventory.
type CycleCountAdjustment struct {
	AdjustmentID    uint      `gorm:"primaryKey;column:adjustment_id" json:"adjustment_id"`
	CycleCountID    uint      `gorm:"column:cycle_count_id;index" json:"cycle_count_id"`
	ProductID       uint      `gorm:"column:product_id" json:"product_id"`
	SystemQuantity  int       `gorm:"column:system_quantity" json:"system_quantity"`
	CountedQuantity int       `gorm:"column:counted_quantity" json:"counted_quantity"`
	Variance        int       `gorm:"column:variance" json:"variance"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the gorm default.
func (CycleCountAdjustment) TableName() string {
	return "cycle_count_adjustments"
}
