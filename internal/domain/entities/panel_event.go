package entities

import (
	"time"
)

// PanelEventType represents the kind of panel update being broadcast
type PanelEventType string

const (
	PanelEventTypeSnapshot  PanelEventType = "snapshot"
	PanelEventTypeSector    PanelEventType = "sector"
	PanelEventTypePhysician PanelEventType = "physician"
	PanelEventTypePatient   PanelEventType = "patient"
	PanelEventTypePlayVideo PanelEventType = "playVideo"
	PanelEventTypeStopVideo PanelEventType = "stopVideo"
)

// PanelEvent is the unit of broadcast: one update delivered to every
// connected display or admin client.
type PanelEvent struct {
	Type      PanelEventType `json:"type"`
	Payload   interface{}    `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewPanelEvent creates an event stamped with the current time
func NewPanelEvent(eventType PanelEventType, payload interface{}) *PanelEvent {
	return &PanelEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Snapshot is the full-state payload delivered once per new subscriber
type Snapshot struct {
	Sectors    []*Sector    `json:"sectors"`
	Physicians []*Physician `json:"physicians"`
	Patients   []*Patient   `json:"patients"`
}

// DeletionMarker is broadcast in place of an entity when it is removed
type DeletionMarker struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// NewDeletionMarker creates the deletion payload for an entity id
func NewDeletionMarker(id string) DeletionMarker {
	return DeletionMarker{ID: id, Action: "deleted"}
}

// PlayVideoPayload carries the resolved video identifier plus playback
// options for the TVs.
type PlayVideoPayload struct {
	VideoID string `json:"videoId"`
	Start   int    `json:"start"`
	Mute    bool   `json:"mute"`
}

// StopVideoPayload is intentionally empty; the event type alone is the signal
type StopVideoPayload struct{}
