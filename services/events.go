package services

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change describes one committed catalog mutation
type Change struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

// Publisher receives changes after their transaction committed
type Publisher interface {
	Publish(Change)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Change) {}
