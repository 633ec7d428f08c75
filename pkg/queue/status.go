package queue

// Status is the result of the non-raising queue operations
type Status int

const (
	// Success the element was pushed or pulled
	Success Status = iota
	// Empty the queue had no element and is still open
	Empty
	// Full the queue was at capacity and is still open
	Full
	// Closed the queue is closed (and, for pulls, drained)
	Closed
	// Timeout the deadline passed before an element or closure arrived
	Timeout
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Full:
		return "full"
	case Closed:
		return "closed"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}
