package dto

import (
	"encoding/json"
	"time"
)

// SaveSnapshotRequest captura de un período. Los payloads son listas JSON opcionales.
type SaveSnapshotRequest struct {
	Year      int             `json:"year" validate:"required,min=2000,max=2100"`
	Month     int             `json:"month" validate:"required,min=1,max=12"`
	Headcount json.RawMessage `json:"headcount" swaggertype:"array,object"`
	NHT       json.RawMessage `json:"nht" swaggertype:"array,object"`
	Terms     json.RawMessage `json:"terms" swaggertype:"array,object"`
	IsFinal   bool            `json:"is_final"`
}

// SnapshotSummary fila del listado de snapshots.
type SnapshotSummary struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	IsFinal   bool      `json:"is_final"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotResponse snapshot con sus payloads.
type SnapshotResponse struct {
	SnapshotSummary
	Headcount json.RawMessage `json:"headcount,omitempty" swaggertype:"array,object"`
	NHT       json.RawMessage `json:"nht,omitempty" swaggertype:"array,object"`
	Terms     json.RawMessage `json:"terms,omitempty" swaggertype:"array,object"`
}
