package registry

// Registry combines a Locator and a Callbacks, mirroring the single registry
// object applications pass around.
type Registry struct {
	*Locator
	*Callbacks
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		Locator:   NewLocator(),
		Callbacks: NewCallbacks(),
	}
}
