package dto

const (
	LabelManual = "manual"

	MessageDisabled = "Snapshot storage is not configured"
	MessageFailed   = "Failed to take snapshot"
)

type SnapshotResponse struct {
	Location string `json:"location" example:"s3://hotel-backups/snapshots/hotel_manual_20240601T120000Z.db"`
}
