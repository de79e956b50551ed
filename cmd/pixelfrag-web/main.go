package main

import (
	"net/http"

	"github.com/inhies/go-bytesize"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"pixelfrag/pkg/convert"
	"pixelfrag/pkg/store"
	"pixelfrag/pkg/web"
)

var listen = flag.String("listen", ":9123", "listen addr")
var maxSize = flag.String("max-size", convert.DefaultMaxSize.String(), "largest accepted upload")
var history = flag.Int("history", store.DefaultHistory, "conversions kept downloadable")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				if *debug {
					return zap.NewDevelopment()
				}
				return zap.NewProduction()
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			func(logger *zap.Logger) (*convert.Converter, error) {
				limit, err := bytesize.Parse(*maxSize)
				if err != nil {
					return nil, err
				}
				return convert.New(logger, convert.WithMaxSize(limit)), nil
			},
			func() *store.Board {
				return store.NewBoard(*history)
			},
			web.NewHandler,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(
			web.Serve,
		),
	).Run()
}
