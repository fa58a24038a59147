package state

// Priority bounds for queue transfers.
const (
	MinPriority = 0
	MaxPriority = 10
)

// Priority holds the queue-transfer priority. Out-of-range input is
// rejected outright, never clamped; the prior value is retained.
type Priority struct {
	value int
}

// Set installs a new priority. Returns false for values outside [0,10].
func (p *Priority) Set(value int) bool {
	if value < MinPriority || value > MaxPriority {
		return false
	}
	p.value = value
	return true
}

// Get returns the current priority.
func (p *Priority) Get() int {
	return p.value
}
