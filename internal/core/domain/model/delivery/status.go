package delivery

// Status is the progress of a delivery.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAssigned  Status = "ASSIGNED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusFailed    Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

// IsFinal reports whether the delivery left the driver workflow.
func (s Status) IsFinal() bool {
	return s == StatusDelivered || s == StatusFailed
}
