package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goforj/godump"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/drawscript/spl/pkg/canvas"
	"github.com/drawscript/spl/pkg/loader"
	"github.com/drawscript/spl/pkg/spl/command"
	"github.com/drawscript/spl/pkg/spl/interpreter"
)

const (
	prompt      = "spl> "
	historyFile = ".spl_history"
)

const sessionHelp = `Statements are executed as they are typed.
Session commands:
  :load FILE     run a program, its methods stay callable
  :export FILE   save drawn operations (json, or cbor for *.cbor)
  :vars          show variables
  :methods       list declared methods
  :state         show cursor, pen and fill
  :commands      list drawing commands
  :help          show this help
  :quit          leave
`

// session holds one interactive interpreter and the canvas it draws on.
type session struct {
	i      *interpreter.Interpreter
	c      *canvas.Canvas
	l      *loader.Loader
	out    io.Writer
	stop   *atomic.Bool
	dump   func(vs ...any)
	format canvas.Format
}

func newSession(opts Opts, l *loader.Loader, out io.Writer, stop *atomic.Bool) (*session, error) {
	format := canvas.FormatJSON
	if opts.Format != formatNone {
		f, err := canvas.ParseFormat(opts.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	c := canvas.New(opts.Width, opts.Height)
	return &session{
		i:      interpreter.New(c, interpreter.WithMaxSteps(opts.MaxSteps), interpreter.WithStopFlag(stop)),
		c:      c,
		l:      l,
		out:    out,
		stop:   stop,
		dump:   godump.Dump,
		format: format,
	}, nil
}

// handle executes one input line and reports whether the session should end.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	s.stop.Store(false)
	if !strings.HasPrefix(line, ":") {
		_ = s.i.RunSingleStatement(line, 0)
		s.flush()
		return false
	}
	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return true
	case "load":
		s.load(arg)
	case "export":
		s.export(arg)
	case "vars":
		s.dump(s.i.Variables())
	case "methods":
		s.printf("%s\n", strings.Join(s.i.Procedures(), " "))
	case "state":
		x, y := s.c.Position()
		s.printf("cursor %d,%d pen %s (%s) fill %t, %d operations\n", x, y, s.c.Pen(), s.c.Hex(), s.c.Fill(), len(s.c.Ops()))
	case "commands":
		s.printf("%s\n", strings.Join(command.Names(), " "))
	case "help":
		s.printf("%s", sessionHelp)
	default:
		s.printf("Unknown session command ':%s', try :help\n", cmd)
	}
	return false
}

func (s *session) load(path string) {
	if path == "" {
		s.printf("Usage: :load FILE\n")
		return
	}
	src, err := s.l.Load(path)
	if err != nil {
		s.printf("%v\n", err)
		return
	}
	_ = s.i.RunProgram(src.Text)
	s.flush()
}

func (s *session) export(path string) {
	if path == "" {
		s.printf("Usage: :export FILE\n")
		return
	}
	f := s.format
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		f = canvas.FormatCBOR
	}
	if err := export(s.c, f, s.l, path); err != nil {
		s.printf("%v\n", err)
		return
	}
	s.printf("Saved %d operations to %s\n", len(s.c.Ops()), path)
}

func (s *session) flush() {
	s.printf("%s", s.i.DrainErrors())
}

func (s *session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func runREPL(opts Opts) error {
	stop, release := newStopFlag()
	defer release()
	s, err := newSession(opts, loader.NewOS(), os.Stdout, stop)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "failed to read standard input")
		}
		runErr := s.i.RunProgram(loader.Normalize(string(b)))
		s.flush()
		if err := s.finish(opts); err != nil {
			return err
		}
		return runErr
	}

	l := liner.NewLiner()
	defer func() {
		_ = l.Close()
	}()
	l.SetCtrlCAborts(true)
	history := historyPath()
	fs := afero.NewOsFs()
	if f, err := fs.Open(history); err == nil {
		_, _ = l.ReadHistory(f)
		_ = f.Close()
	}
	s.printf("spl %s, type :help for help\n", version)
	for {
		line, err := l.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return errors.Wrap(err, "failed to read input")
		}
		if strings.TrimSpace(line) != "" {
			l.AppendHistory(line)
		}
		if s.handle(line) {
			break
		}
	}
	if f, err := fs.Create(history); err == nil {
		_, _ = l.WriteHistory(f)
		_ = f.Close()
	} else {
		zap.S().Debugf("Failed to save history: %v", err)
	}
	return s.finish(opts)
}

// finish exports the canvas if an export format was requested.
func (s *session) finish(opts Opts) error {
	exp, err := exporter(opts, s.l)
	if err != nil {
		return err
	}
	return exp(s.c)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
