package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/drawscript/spl/pkg/canvas"
	"github.com/drawscript/spl/pkg/loader"
	"github.com/drawscript/spl/pkg/logging"
	"github.com/drawscript/spl/pkg/spl/interpreter"
)

var version = "v0.0.0"

const formatNone = "none"

type Opts struct {
	Logging  logging.Parameters
	MaxSteps int
	Format   string
	Out      string
	Width    int
	Height   int
	Help     bool
	Version  bool
}

func main() {
	opts := Opts{}
	opts.Logging.Initialize(flag.CommandLine)
	flag.IntVar(&opts.MaxSteps, "max-steps", 0, "Stop a run after this many statements and loop iterations, 0 means no limit")
	flag.StringVarP(&opts.Format, "format", "f", formatNone, "Export drawn operations after a run: none, json or cbor")
	flag.StringVarP(&opts.Out, "out", "o", "", "File to export to, standard output if empty")
	flag.IntVar(&opts.Width, "width", canvas.DefaultWidth, "Canvas width")
	flag.IntVar(&opts.Height, "height", canvas.DefaultHeight, "Canvas height")
	flag.BoolVarP(&opts.Help, "help", "h", false, "Print usage information (this message) and quit")
	flag.BoolVarP(&opts.Version, "version", "v", false, "Print version information and quit")
	flag.Usage = showUsage
	flag.Parse()

	if opts.Help {
		showUsage()
		os.Exit(0)
	}
	if opts.Version {
		fmt.Printf("spl %s\n", version)
		os.Exit(0)
	}
	if err := opts.Logging.Parse(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, _ := logging.SetupLogger(opts.Logging)
	defer func() {
		_ = logger.Sync()
	}()

	var err error
	switch flag.NArg() {
	case 0:
		err = runREPL(opts)
	case 1:
		err = runFile(opts, flag.Arg(0))
	default:
		showUsage()
		os.Exit(2)
	}
	if err != nil {
		zap.S().Error(err)
		os.Exit(1)
	}
}

func showUsage() {
	_, _ = fmt.Fprintf(os.Stderr, "\nUsage of spl %s\n\n  spl [flags] [program]\n\nWithout a program an interactive session is started.\n\n", version)
	flag.PrintDefaults()
}

func exporter(opts Opts, l *loader.Loader) (func(c *canvas.Canvas) error, error) {
	if opts.Format == formatNone {
		return func(*canvas.Canvas) error { return nil }, nil
	}
	f, err := canvas.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	return func(c *canvas.Canvas) error {
		return export(c, f, l, opts.Out)
	}, nil
}

func runFile(opts Opts, path string) error {
	l := loader.NewOS()
	exp, err := exporter(opts, l)
	if err != nil {
		return err
	}
	src, err := l.Load(path)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := canvas.New(opts.Width, opts.Height)
	i := interpreter.New(c, interpreter.WithContext(ctx), interpreter.WithMaxSteps(opts.MaxSteps))
	zap.S().Debugf("Running '%s' (%d lines, id %s)", src.Path, src.Lines(), src.ID())
	runErr := i.RunProgram(src.Text)
	_, _ = fmt.Fprint(os.Stderr, i.DrainErrors())
	if err := exp(c); err != nil {
		return err
	}
	return errors.Wrapf(runErr, "program '%s' stopped", path)
}

func newStopFlag() (*atomic.Bool, func()) {
	stop := atomic.NewBool(false)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				stop.Store(true)
			case <-done:
				return
			}
		}
	}()
	return stop, func() {
		signal.Stop(ch)
		close(done)
	}
}
