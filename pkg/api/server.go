package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	apiErrs "github.com/drawscript/spl/pkg/api/errors"
	"github.com/drawscript/spl/pkg/canvas"
	"github.com/drawscript/spl/pkg/errs"
	"github.com/drawscript/spl/pkg/loader"
	"github.com/drawscript/spl/pkg/spl/command"
	"github.com/drawscript/spl/pkg/spl/interpreter"
	"github.com/drawscript/spl/pkg/spl/vars"
	"github.com/drawscript/spl/pkg/util/fifo_cache"
	"github.com/drawscript/spl/pkg/util/limit_listener"
)

const shutdownTimeout = 5 * time.Second

// Server executes programs over HTTP. Every request gets its own
// interpreter and canvas, so requests never share state. Programs are
// deterministic, so results of completed runs are cached by program
// fingerprint and canvas size. Events of a cached result are stamped
// with the time it is served.
type Server struct {
	opts    *RunOptions
	results *fifo_cache.FIFOCache[runKey, Result]
	now     func() time.Time
}

type runKey struct {
	program       uint64
	width, height int
}

func NewServer(opts *RunOptions) *Server {
	if opts == nil {
		opts = DefaultRunOptions()
	}
	return &Server{
		opts:    opts,
		results: fifo_cache.New[runKey, Result](opts.ResultCacheSize),
		now:     time.Now,
	}
}

// Handler builds the HTTP handler with all configured middleware.
func (s *Server) Handler() (http.Handler, error) {
	return s.routes()
}

type RunRequest struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ExecRequest struct {
	Statements []string `json:"statements"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
}

type Cursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Result struct {
	ProgramID  string              `json:"program_id,omitempty"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	Ops        []canvas.Op         `json:"ops"`
	Cursor     Cursor              `json:"cursor"`
	Errors     []interpreter.Event `json:"errors"`
	Variables  []vars.Variable     `json:"variables"`
	Procedures []string            `json:"procedures"`
	Failed     bool                `json:"failed"`
	Failure    string              `json:"failure,omitempty"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return apiErrs.NewProgramTooLargeError(mbe.Limit)
		}
		return apiErrs.NewInvalidJSONError(err)
	}
	return nil
}

func checkSize(width, height int) error {
	if width < 0 || height < 0 || width > MaxCanvasSide || height > MaxCanvasSide {
		return apiErrs.NewInvalidCanvasSizeError(width, height, MaxCanvasSide)
	}
	return nil
}

func (s *Server) newInterpreter(ctx context.Context, width, height int) (*interpreter.Interpreter, *canvas.Canvas) {
	c := canvas.New(width, height)
	return interpreter.New(c,
		interpreter.WithContext(ctx),
		interpreter.WithMaxSteps(s.opts.MaxSteps),
		interpreter.WithClock(s.now),
	), c
}

func restamp(events []interpreter.Event, t time.Time) []interpreter.Event {
	r := make([]interpreter.Event, len(events))
	for n, e := range events {
		e.Time = t
		r[n] = e
	}
	return r
}

func result(i *interpreter.Interpreter, c *canvas.Canvas, endpoint string, failure error) Result {
	x, y := c.Position()
	w, h := c.Size()
	res := Result{
		Width:      w,
		Height:     h,
		Ops:        c.Ops(),
		Cursor:     Cursor{X: x, Y: y},
		Errors:     i.Errors(),
		Variables:  i.Variables(),
		Procedures: i.Procedures(),
	}
	if res.Ops == nil {
		res.Ops = []canvas.Op{}
	}
	if res.Errors == nil {
		res.Errors = []interpreter.Event{}
	}
	if res.Variables == nil {
		res.Variables = []vars.Variable{}
	}
	if res.Procedures == nil {
		res.Procedures = []string{}
	}
	outcome := "ok"
	if failure != nil {
		res.Failed = true
		res.Failure = failure.Error()
		outcome = "failed"
	}
	metricRuns.WithLabelValues(endpoint, outcome).Inc()
	for _, e := range res.Errors {
		metricErrors.WithLabelValues(e.Kind.String()).Inc()
	}
	return res
}

// HandleRun executes a whole program.
func (s *Server) HandleRun(w http.ResponseWriter, r *http.Request) error {
	req := RunRequest{}
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	if err := checkSize(req.Width, req.Height); err != nil {
		return err
	}
	src := loader.FromText("request", req.Source)
	if src.Lines() == 0 {
		return apiErrs.EmptyRequest
	}
	key := runKey{program: src.Fingerprint, width: req.Width, height: req.Height}
	if res, ok := s.results.Get(key); ok {
		metricRuns.WithLabelValues("run", "cached").Inc()
		res.Errors = restamp(res.Errors, s.now())
		return sendJSON(w, res)
	}
	i, c := s.newInterpreter(r.Context(), req.Width, req.Height)
	runErr := i.RunProgram(src.Text)
	res := result(i, c, "run", runErr)
	res.ProgramID = src.ID()
	if errs.Is(runErr, errs.Interrupted) && r.Context().Err() != nil {
		zap.S().Debugf("Program %s cancelled: %v", src.ID(), runErr)
	} else {
		s.results.Add(key, res)
		metricCachedResults.Set(float64(s.results.Len()))
	}
	return sendJSON(w, res)
}

// HandleExec executes statements one at a time, as typed interactively.
func (s *Server) HandleExec(w http.ResponseWriter, r *http.Request) error {
	req := ExecRequest{}
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	if err := checkSize(req.Width, req.Height); err != nil {
		return err
	}
	if len(req.Statements) == 0 {
		return apiErrs.EmptyRequest
	}
	i, c := s.newInterpreter(r.Context(), req.Width, req.Height)
	var failure error
	for n, st := range req.Statements {
		if err := i.RunSingleStatement(st, n+1); err != nil && failure == nil {
			failure = err
		}
	}
	return sendJSON(w, result(i, c, "exec", failure))
}

type CommandsResponse struct {
	Commands []string `json:"commands"`
	Colors   []string `json:"colors"`
}

// HandleCommands lists the built-in commands and accepted colors.
func (s *Server) HandleCommands(w http.ResponseWriter, _ *http.Request) error {
	return sendJSON(w, CommandsResponse{Commands: command.Names(), Colors: canvas.Colors()})
}

func sendJSON(w http.ResponseWriter, v interface{}) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal response to JSON")
	}
	return nil
}

// Run serves the API on address until ctx is done.
func Run(ctx context.Context, address string, s *Server) error {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", address)
	}
	return Serve(ctx, l, s)
}

// Serve serves the API on l until ctx is done. l is closed on return.
func Serve(ctx context.Context, l net.Listener, s *Server) error {
	handler, err := s.Handler()
	if err != nil {
		_ = l.Close()
		return err
	}
	if s.opts.MaxConnections > 0 {
		l = limit_listener.LimitListener(l, s.opts.MaxConnections)
	}
	apiServer := &http.Server{Handler: handler, ReadHeaderTimeout: shutdownTimeout}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		zap.S().Info("Shutting down API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("Failed to shutdown API server: %v", err)
		}
	}()
	if n := s.results.Cap(); n > 0 {
		zap.S().Infof("API listening on %s, caching up to %d results", l.Addr(), n)
	} else {
		zap.S().Infof("API listening on %s, result cache disabled", l.Addr())
	}
	err = apiServer.Serve(l)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
