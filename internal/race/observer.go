package race

// Observer receives a snapshot after every turn, respawn and reset.
// It is called synchronously from the race loop and must not block.
type Observer interface {
	RaceUpdated(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Snapshot)

// RaceUpdated calls f(s).
func (f ObserverFunc) RaceUpdated(s Snapshot) {
	f(s)
}
