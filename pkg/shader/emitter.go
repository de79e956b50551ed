/*
Package shader turns a 16x16 pixel grid into the source of a GLSL ES fragment
shader.

The grid is embedded as a constant vec3 table in row-major, top-down order.
The generated main() maps gl_FragCoord onto that table for any viewport size,
flipping the vertical axis because gl_FragCoord grows upwards.
*/
package shader

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"pixelfrag/pkg/bitmap"
)

func New(opts ...Option) *Emitter {
	e := &Emitter{
		version:   DefaultVersion,
		precision: DefaultPrecision,
		table:     DefaultTableName,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Emitter renders grids as fragment shader source. The zero value is not
// usable, create one with New.
type Emitter struct {
	version   string
	precision string
	table     string
}

// Source returns the shader program for g.
func (e *Emitter) Source(g *bitmap.Grid) string {
	var sb strings.Builder
	_ = e.Write(&sb, g)
	return sb.String()
}

// Write writes the shader program for g to w. Lines are separated by a
// single newline and the program does not end with one.
func (e *Emitter) Write(w io.Writer, g *bitmap.Grid) error {
	lines := []string{
		"#version " + e.version,
		"precision " + e.precision + " float;",
		"precision " + e.precision + " int;",
		"out vec4 fragColor;",
		"uniform vec2 resolution;",
		fmt.Sprintf("const vec3 %s[%d] = vec3[%d](", e.table, bitmap.Cells, bitmap.Cells),
	}
	lines = append(lines, e.entries(g)...)
	lines = append(lines,
		");",
		"void main(){",
		"  vec2 uv=(gl_FragCoord.xy-vec2(0.5))/resolution;",
		"  int ix=int(clamp(floor(uv.x*16.0),0.0,15.0));",
		"  int iy=int(clamp(floor(uv.y*16.0),0.0,15.0));",
		"  int row_top=15-iy;",
		"  int idx=row_top*16+ix;",
		"  vec3 col="+e.table+"[idx];",
		"  fragColor=vec4(col,1.0);",
		"}",
	)

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func (e *Emitter) entries(g *bitmap.Grid) []string {
	pixels := g.Pixels()
	last := len(pixels) - 1

	return lo.Map(pixels, func(c bitmap.RGB, i int) string {
		return fmt.Sprintf("  vec3(%s, %s, %s)%s",
			FormatChannel(c.R),
			FormatChannel(c.G),
			FormatChannel(c.B),
			lo.Ternary(i < last, ",", ""),
		)
	})
}
