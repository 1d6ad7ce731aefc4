package estimation

const (
	KindExcavator = "excavator"
	KindTruck     = "truck"
)

// Equipment is any unit whose productivity is capacity moved per timed cycle.
type Equipment interface {
	// Active reports whether the unit takes part in fleet aggregation.
	Active() bool
	// Cycle returns the volume moved per cycle (cubic yards) and the cycle duration (minutes).
	Cycle() (capacity, minutes float64)
	Kind() string
}

// Excavator digs BucketCapacity cubic yards every CycleTime minutes.
type Excavator struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BucketCapacity float64 `json:"bucketCapacity"`
	CycleTime      float64 `json:"cycleTime"`
	IsActive       bool    `json:"isActive"`
}

func (e Excavator) Active() bool                       { return e.IsActive }
func (e Excavator) Cycle() (capacity, minutes float64) { return e.BucketCapacity, e.CycleTime }
func (e Excavator) Kind() string                       { return KindExcavator }
func (e Excavator) Identity() string                   { return e.ID }

func (e Excavator) WithActive(active bool) Excavator {
	e.IsActive = active
	return e
}

// Truck hauls Capacity cubic yards per RoundTripTime minutes.
type Truck struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Capacity      float64 `json:"capacity"`
	RoundTripTime float64 `json:"roundTripTime"`
	IsActive      bool    `json:"isActive"`
}

func (t Truck) Active() bool                       { return t.IsActive }
func (t Truck) Cycle() (capacity, minutes float64) { return t.Capacity, t.RoundTripTime }
func (t Truck) Kind() string                       { return KindTruck }
func (t Truck) Identity() string                   { return t.ID }

func (t Truck) WithActive(active bool) Truck {
	t.IsActive = active
	return t
}
