package entities

// PhysicianStatus represents a physician's availability
type PhysicianStatus string

const (
	PhysicianStatusAvailable PhysicianStatus = "Available"
	PhysicianStatusBusy      PhysicianStatus = "Busy"
	PhysicianStatusAway      PhysicianStatus = "Away"
)

// Valid reports whether p is a known availability status
func (p PhysicianStatus) Valid() bool {
	switch p {
	case PhysicianStatusAvailable, PhysicianStatusBusy, PhysicianStatusAway:
		return true
	}
	return false
}

// Physician represents a staff member shown on the panel
type Physician struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	AvailabilityStatus PhysicianStatus `json:"availabilityStatus"`
}

// Clone returns a copy safe to hand out after the store lock is released
func (p *Physician) Clone() *Physician {
	c := *p
	return &c
}
