package shader

const (
	DefaultVersion   = "300 es"
	DefaultPrecision = "mediump"
	DefaultTableName = "PIXELS"
)

type Option func(e *Emitter)

// WithVersion sets the #version directive, e.g. "300 es".
func WithVersion(version string) Option {
	return func(e *Emitter) {
		if version != "" {
			e.version = version
		}
	}
}

// WithPrecision sets the default float and int precision qualifier.
func WithPrecision(precision string) Option {
	return func(e *Emitter) {
		if precision != "" {
			e.precision = precision
		}
	}
}

func WithTableName(name string) Option {
	return func(e *Emitter) {
		if name != "" {
			e.table = name
		}
	}
}
