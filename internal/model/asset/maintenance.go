package asset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportReported   ReportStatus = "REPORTED"
	ReportInProgress ReportStatus = "IN_PROGRESS"
	ReportCompleted  ReportStatus = "COMPLETED"
)

type ReportPriority string

const (
	PriorityLow    ReportPriority = "LOW"
	PriorityMedium ReportPriority = "MEDIUM"
	PriorityHigh   ReportPriority = "HIGH"
)

// MaintenanceReport tracks an issue raised against one equipment or vehicle.
// Exactly one of EquipmentID/VehicleID is set.
type MaintenanceReport struct {
	ID             uuid.UUID      `json:"id"`
	EquipmentID    *uuid.UUID     `json:"equipmentId,omitempty"`
	VehicleID      *uuid.UUID     `json:"vehicleId,omitempty"`
	Issue          string         `json:"issue"`
	Remarks        *string        `json:"remarks,omitempty"`
	Priority       ReportPriority `json:"priority"`
	Status         ReportStatus   `json:"status"`
	AttachmentURLs []string       `json:"attachmentUrls"`
	ReportedAt     time.Time      `json:"reportedAt"`
	RepairedAt     *time.Time     `json:"repairedAt,omitempty"`
}

// ValidateTransition enforces the REPORTED -> IN_PROGRESS -> COMPLETED
// workflow. Moving backwards or skipping a step is rejected.
func ValidateTransition(from, to ReportStatus) error {
	allowed := map[ReportStatus]ReportStatus{
		ReportReported:   ReportInProgress,
		ReportInProgress: ReportCompleted,
	}
	if from == to {
		return nil
	}
	if next, ok := allowed[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: cannot move report from %s to %s", ErrBadPayload, from, to)
}
