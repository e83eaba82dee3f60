package hdc5

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	objectCacheSize int
}

func defaultOpenOptions() *openOptions {
	return &openOptions{objectCacheSize: 1}
}

// WithObjectCacheSize bounds the number of decoded object headers kept by
// address, so repeated lookups of the same child don't re-parse its
// header from scratch. The default holds a single header, the most
// recently parsed one.
func WithObjectCacheSize(n int) OpenOption {
	return func(o *openOptions) {
		if n > 0 {
			o.objectCacheSize = n
		}
	}
}
