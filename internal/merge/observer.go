package merge

// Observer receives progress notifications while a report is generated.
// Implementations must tolerate being called from a single goroutine only.
type Observer interface {
	Phase(name string)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) Phase(string)         {}
func (NopObserver) Infof(string, ...any) {}
func (NopObserver) Warnf(string, ...any) {}
