package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/ioutil"
	"time"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixelfrag/pkg/bitmap"
	"pixelfrag/pkg/shader"
)

func New(logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		logger:  logger,
		emitter: shader.New(),
		maxSize: DefaultMaxSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Converter runs the image to shader pipeline. It keeps no state between
// conversions and is safe for concurrent use.
type Converter struct {
	logger  *zap.Logger
	emitter *shader.Emitter
	maxSize bytesize.ByteSize
}

// MaxSize returns the input size limit, zero or less when there is none.
func (c *Converter) MaxSize() bytesize.ByteSize {
	return c.maxSize
}

// Load reads and decodes one encoded image. EXIF orientation is applied the
// way a browser would before the pixels are sampled.
func (c *Converter) Load(r io.Reader) (image.Image, error) {
	if r == nil {
		return nil, ErrNoInput
	}

	if c.maxSize > 0 {
		r = io.LimitReader(r, int64(c.maxSize)+1)
	}

	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input failed")
	}

	if c.maxSize > 0 && int64(len(bs)) > int64(c.maxSize) {
		return nil, fmt.Errorf("%w: limit is %s", ErrTooLarge, c.maxSize)
	}

	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	c.logger.With(
		zap.String("size", bytesize.New(float64(len(bs))).String()),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	).Debug("loaded")

	return img, nil
}

// Convert samples src and builds both artifacts in memory. name is the
// source file name the artifact names are derived from.
func (c *Converter) Convert(name string, src image.Image) (*Result, error) {
	g, err := bitmap.Sample(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	shaderName, previewName := Names(name)

	var text bytes.Buffer
	if err := c.emitter.Write(&text, g); err != nil {
		return nil, fmt.Errorf("%w: shader: %s", ErrEncode, err)
	}

	var png bytes.Buffer
	if err := bitmap.Encode(&png, bitmap.Magnify(g, bitmap.PreviewScale)); err != nil {
		return nil, fmt.Errorf("%w: preview: %s", ErrEncode, err)
	}

	return &Result{
		ID:      xid.New(),
		Source:  name,
		Grid:    g,
		Shader:  Artifact{Name: shaderName, MIME: ShaderMIME, Data: text.Bytes()},
		Preview: Artifact{Name: previewName, MIME: PreviewMIME, Data: png.Bytes()},
	}, nil
}

// Run loads, converts and publishes one input. Either both artifacts reach
// the sink or neither does. A run whose context is done by the time the
// artifacts are ready is dropped without publishing.
func (c *Converter) Run(ctx context.Context, in Input, sink Sink) (*Result, error) {
	if in.Body == nil || in.Name == "" {
		return nil, ErrNoInput
	}

	start := time.Now()
	log := c.logger.With(zap.String("source", in.Name))

	src, err := c.Load(in.Body)
	if err != nil {
		return nil, err
	}

	res, err := c.Convert(in.Name, src)
	if err != nil {
		return nil, err
	}

	log = log.With(zap.Stringer("id", res.ID))

	if err := ctx.Err(); err != nil {
		log.Debug("abandoned")
		return nil, errors.Wrap(err, "conversion abandoned")
	}

	if err := sink.Publish(ctx, res); err != nil {
		return nil, fmt.Errorf("publish failed: %w", err)
	}

	log.With(
		zap.String("shader", res.Shader.Name),
		zap.String("preview", res.Preview.Name),
		zap.String("preview_size", bytesize.New(float64(len(res.Preview.Data))).String()),
		zap.Duration("cost", time.Since(start)),
	).Info("converted")

	return res, nil
}
