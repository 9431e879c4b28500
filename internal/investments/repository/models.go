package repository

import (
	"time"

	"github.com/google/uuid"
)

// Investment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Construction stages, in order.
const (
	StageBooking    = "booking"
	StageFoundation = "foundation"
	StageStructure  = "structure"
	StageFinishing  = "finishing"
	StageReady      = "ready"
)

// Document is a file attached to an investment (agreement, receipt).
type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Investment is a customer's stake in a listing.
type Investment struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	ListingID          uuid.UUID
	ListingName        string
	BuilderID          uuid.UUID
	Amount             int64
	InvestmentType     string
	Status             string
	ProgressStage      string
	ProgressPercentage int
	ProgressUpdatedAt  time.Time
	Notes              string
	Documents          []Document
	CreatedAt          time.Time
}

// Snapshot is the state an update was decided against. Writes only land
// while the stored row still matches it.
type Snapshot struct {
	Status     string
	Stage      string
	Percentage int
}

// SnapshotOf captures the fields conditional updates compare against.
func SnapshotOf(inv Investment) Snapshot {
	return Snapshot{Status: inv.Status, Stage: inv.ProgressStage, Percentage: inv.ProgressPercentage}
}

// Progress is a construction update written by the builder.
type Progress struct {
	Stage      string
	Percentage int
	Notes      string
	Documents  []Document
}
