package engine

// Status is the tri-state watering recommendation for a single day.
type Status string

const (
	StatusYes   Status = "yes"
	StatusMaybe Status = "maybe"
	StatusNo    Status = "no"
)

// Valid reports whether s is one of the three recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusYes, StatusMaybe, StatusNo:
		return true
	}
	return false
}
