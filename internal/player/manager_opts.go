package player

type ManagerOpt func(*Manager)

// WithReady delays accepting sessions until ready is closed.
func WithReady(ready <-chan struct{}) ManagerOpt {
	return func(m *Manager) {
		m.ready = ready
	}
}
