// Package loader reads program sources from a filesystem and writes
// exported drawings back to it.
package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// MaxSourceSize caps the size of a program file.
const MaxSourceSize = 1 << 20

const bom = "\ufeff"

// Source is a loaded program with normalized line endings.
type Source struct {
	Path        string
	Text        string
	Fingerprint uint64
}

// ID is a short printable form of the fingerprint.
func (s Source) ID() string {
	return fmt.Sprintf("%016x", s.Fingerprint)
}

// Lines returns the number of lines in the program.
func (s Source) Lines() int {
	if s.Text == "" {
		return 0
	}
	return strings.Count(s.Text, "\n") + 1
}

type Loader struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// NewOS returns a loader over the operating system's filesystem.
func NewOS() *Loader {
	return New(afero.NewOsFs())
}

func (l *Loader) Load(path string) (Source, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return Source{}, errors.Wrapf(err, "failed to open program '%s'", path)
	}
	defer func() {
		_ = f.Close()
	}()
	b, err := io.ReadAll(io.LimitReader(f, MaxSourceSize+1))
	if err != nil {
		return Source{}, errors.Wrapf(err, "failed to read program '%s'", path)
	}
	if len(b) > MaxSourceSize {
		return Source{}, errors.Errorf("program '%s' is larger than %d bytes", path, MaxSourceSize)
	}
	return FromText(path, string(b)), nil
}

// FromText builds a Source from text that did not come from a file.
func FromText(name, text string) Source {
	n := Normalize(text)
	return Source{Path: name, Text: n, Fingerprint: Fingerprint(n)}
}

// Normalize strips a byte order mark and converts CRLF and CR line
// endings to LF.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Fingerprint identifies program text.
func Fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Save writes b to path, replacing any existing content.
func (l *Loader) Save(path string, b []byte) error {
	f, err := l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to create '%s'", path)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write '%s'", path)
	}
	return errors.Wrapf(f.Close(), "failed to close '%s'", path)
}
