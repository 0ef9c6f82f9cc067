package asset

import (
	"time"

	"github.com/google/uuid"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/parts"
)

type Status string

const (
	StatusOperational    Status = "OPERATIONAL"
	StatusNonOperational Status = "NON_OPERATIONAL"
)

type Equipment struct {
	ID             uuid.UUID  `json:"id"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	Type           string     `json:"type"`
	Owner          string     `json:"owner"`
	Status         Status     `json:"status"`
	Remarks        *string    `json:"remarks,omitempty"`
	ProjectID      uuid.UUID  `json:"projectId"`
	InspectionDate *time.Time `json:"inspectionDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// PartsColumn is the raw persisted value; Parts is its normalized form.
	PartsColumn []string   `json:"-"`
	Parts       parts.Tree `json:"equipmentParts"`
}

type Vehicle struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Type        string    `json:"type"`
	PlateNumber string    `json:"plateNumber"`
	Owner       string    `json:"owner"`
	Status      Status    `json:"status"`
	ProjectID   uuid.UUID `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	PartsColumn []string   `json:"-"`
	Parts       parts.Tree `json:"vehicleParts"`
}

type Location struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type Client struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LocationID uuid.UUID `json:"locationId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ClientID  uuid.UUID `json:"clientId"`
	CreatedAt time.Time `json:"createdAt"`
}
