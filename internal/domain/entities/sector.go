package entities

// SectorStatus represents the operational status of a ward
type SectorStatus string

const (
	SectorStatusOpen       SectorStatus = "Open"
	SectorStatusRestricted SectorStatus = "Restricted"
)

// Valid reports whether s is a known sector status
func (s SectorStatus) Valid() bool {
	return s == SectorStatusOpen || s == SectorStatusRestricted
}

// Sector represents a physical ward shown on the panel. The restriction
// fields are pointers: absence means the sector carries no restriction
// metadata, which is distinct from an empty value.
type Sector struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Status      SectorStatus `json:"status"`
	Reason      *string      `json:"reason,omitempty"`
	ETAMinutes  *int         `json:"etaMinutes,omitempty"`
	Instruction *string      `json:"instruction,omitempty"`
}

// ClearRestriction removes all restriction metadata. Called whenever a
// sector transitions to Open: an Open sector never carries a reason,
// ETA or instruction.
func (s *Sector) ClearRestriction() {
	s.Reason = nil
	s.ETAMinutes = nil
	s.Instruction = nil
}

// Clone returns a copy of the sector safe to hand to broadcast
// subscribers after the store releases its lock.
func (s *Sector) Clone() *Sector {
	c := *s
	if s.Reason != nil {
		r := *s.Reason
		c.Reason = &r
	}
	if s.ETAMinutes != nil {
		e := *s.ETAMinutes
		c.ETAMinutes = &e
	}
	if s.Instruction != nil {
		i := *s.Instruction
		c.Instruction = &i
	}
	return &c
}
