package entities

// Route represents where a patient has been directed
type Route string

const (
	RouteRedRoom    Route = "RedRoom"
	RouteYellowRoom Route = "YellowRoom"
	RouteGreenRoom  Route = "GreenRoom"
	RouteWaiting    Route = "Waiting"
)

// Valid reports whether r is a known route
func (r Route) Valid() bool {
	switch r {
	case RouteRedRoom, RouteYellowRoom, RouteGreenRoom, RouteWaiting:
		return true
	}
	return false
}

// Patient represents a person awaiting or assigned to care
type Patient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RoutedTo Route  `json:"routedTo"`
}

// Clone returns a copy safe to hand out after the store lock is released
func (p *Patient) Clone() *Patient {
	c := *p
	return &c
}
