package convert

import (
	"context"
	"io"

	"github.com/rs/xid"

	"pixelfrag/pkg/bitmap"
)

const (
	ShaderMIME  = "text/plain; charset=utf-8"
	PreviewMIME = "image/png"
)

// Input is one image handed to the pipeline. Name is the caller's file name
// and only its base name is used to derive the artifact names.
type Input struct {
	Name string
	Body io.Reader
}

type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// Result holds everything one conversion produced.
type Result struct {
	ID      xid.ID
	Source  string
	Grid    *bitmap.Grid
	Shader  Artifact
	Preview Artifact
}

// Artifacts returns the shader and the preview, in publishing order.
func (r *Result) Artifacts() []Artifact {
	return []Artifact{r.Shader, r.Preview}
}

// Sink receives finished conversions. Implementations must make the shader
// available no later than the preview and must leave earlier outputs intact
// when Publish fails.
type Sink interface {
	Publish(ctx context.Context, r *Result) error
}
