package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"pixelfrag/pkg/convert"
	"pixelfrag/pkg/shader"
	"pixelfrag/pkg/store"
)

var out = flag.StringP("out", "o", ".", "output directory")
var glslVersion = flag.String("glsl-version", shader.DefaultVersion, "glsl #version line")
var precision = flag.String("precision", shader.DefaultPrecision, "float and int precision qualifier")
var maxSize = flag.String("max-size", convert.DefaultMaxSize.String(), "largest accepted input file")
var printShader = flag.Bool("print", false, "print shader source to stdout")
var dryRun = flag.Bool("dry-run", false, "convert without writing files")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] IMAGE...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var logger *zap.Logger
	if *debug {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()

	limit, err := bytesize.Parse(*maxSize)
	if err != nil {
		logger.With(zap.String("max-size", *maxSize), zap.Error(err)).Fatal("invalid size")
	}

	conv := convert.New(logger,
		convert.WithMaxSize(limit),
		convert.WithEmitter(shader.New(
			shader.WithVersion(*glslVersion),
			shader.WithPrecision(*precision),
		)),
	)

	var sink convert.Sink
	if *dryRun {
		sink = store.Log(logger)
	} else {
		dir, err := store.NewDir(*out, logger)
		if err != nil {
			logger.With(zap.String("out", *out), zap.Error(err)).Fatal("open output failed")
		}
		sink = dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var bar *progressbar.ProgressBar
	if flag.NArg() > 1 {
		bar = progressbar.Default(int64(flag.NArg()), "converting")
	}

	var stdout io.Writer
	if *printShader {
		stdout = os.Stdout
	}

	if failed := convertAll(ctx, afero.NewOsFs(), conv, sink, flag.Args(), stdout, bar, logger); failed > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}

// convertAll converts every path on its own and returns how many failed.
// Shader sources are echoed to stdout when it is not nil.
func convertAll(ctx context.Context, fs afero.Fs, conv *convert.Converter, sink convert.Sink, paths []string, stdout io.Writer, bar *progressbar.ProgressBar, logger *zap.Logger) int {
	failed := 0

	for _, path := range paths {
		if err := run(ctx, fs, conv, sink, path, stdout); err != nil {
			logger.With(zap.String("source", path), zap.Error(err)).Error("conversion failed")
			failed++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if ctx.Err() != nil {
			break
		}
	}

	return failed
}

func run(ctx context.Context, fs afero.Fs, conv *convert.Converter, sink convert.Sink, path string, stdout io.Writer) error {
	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	res, err := conv.Run(ctx, convert.Input{Name: path, Body: f}, sink)
	if err != nil {
		return err
	}

	if stdout != nil {
		if _, err := fmt.Fprintf(stdout, "%s\n", res.Shader.Data); err != nil {
			return fmt.Errorf("print shader failed: %w", err)
		}
	}
	return nil
}
