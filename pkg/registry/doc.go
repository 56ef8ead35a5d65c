// Package registry provides the service registry views use to find each other.
//
// It is two independent pieces:
//   - Locator: singleton components keyed by their Go type, and named
//     components keyed by string.
//   - Callbacks: single callbacks keyed by string, and callback groups, a
//     named observer list that grows and shrinks at runtime.
//
// Registry embeds both. Lookups of missing keys return zero values rather
// than errors; the only failure is unregistering from a group that was never
// created.
//
//	reg := registry.New()
//	reg.RegisterSingleton(&Session{User: "ada"})
//	s, ok := registry.Singleton[*Session](reg.Locator)
//
//	id := reg.RegisterWithCallbackGroup("cart-changed", func() { ... })
//	for _, fn := range registry.CallbackGroupAs[func()](reg.Callbacks, "cart-changed") {
//	    fn()
//	}
//	_ = reg.UnregisterWithCallbackGroup("cart-changed", id)
package registry
