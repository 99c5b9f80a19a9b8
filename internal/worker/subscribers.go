package worker

// HandlerRegistrar is implemented by every event subscriber in the service package.
type HandlerRegistrar interface {
	RegisterHandlers()
}

// StartEventSubscribers registers the given subscribers in order. Nil entries are skipped
// so optional mirrors can be passed unconditionally.
func StartEventSubscribers(registrars ...HandlerRegistrar) int {
	started := 0
	for _, registrar := range registrars {
		if registrar == nil {
			continue
		}
		registrar.RegisterHandlers()
		started++
	}
	return started
}
