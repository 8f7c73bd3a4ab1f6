package middleware

import "github.com/aretw0/shadenet/pkg/ports"

// Middleware allows wrapping a LayerStore to add behavior.
type Middleware func(ports.LayerStore) ports.LayerStore

// Chain wraps store with mws. The first middleware is the outermost one.
func Chain(store ports.LayerStore, mws ...Middleware) ports.LayerStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
