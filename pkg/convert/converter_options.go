package convert

import (
	"github.com/inhies/go-bytesize"

	"pixelfrag/pkg/shader"
)

// DefaultMaxSize bounds how many encoded bytes Load accepts.
const DefaultMaxSize = 64 * bytesize.MB

type Option func(c *Converter)

func WithEmitter(e *shader.Emitter) Option {
	return func(c *Converter) {
		if e != nil {
			c.emitter = e
		}
	}
}

// WithMaxSize limits the encoded input size. Zero or less disables the limit.
func WithMaxSize(size bytesize.ByteSize) Option {
	return func(c *Converter) {
		c.maxSize = size
	}
}
