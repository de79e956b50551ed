package convert

import "github.com/pkg/errors"

var (
	// ErrNoInput means the caller triggered a conversion without choosing a
	// file. Nothing is produced and previous outputs stay as they are.
	ErrNoInput = errors.New("no input selected")
	// ErrTooLarge means the input exceeded the configured size limit.
	ErrTooLarge = errors.New("input too large")
	// ErrDecode means the input bytes are not a decodable image.
	ErrDecode = errors.New("image decode failed")
	// ErrEncode means an artifact could not be serialized.
	ErrEncode = errors.New("artifact encode failed")
)
