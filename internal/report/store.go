// Package report stores rendered tally reports, so that successive tallies of
// a thread can be saved, reloaded, and compared.
package report

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio"
)

var (
	ErrExists    = errors.New("report already exists")
	ErrNotExists = errors.New("report does not exist")
	errClosed    = errors.New("write to closed report")
)

// Store holds a single report.
type Store interface {
	// Open returns a reader of the current report, or ErrNotExists.
	Open() (io.ReadCloser, error)

	// Create starts writing a new report, failing with ErrExists if one is
	// already stored.
	Create() (PendingWriter, error)

	// Update starts replacing the current report, failing with ErrNotExists
	// if none is stored.
	Update() (PendingWriter, error)
}

// PendingWriter is an uncommitted report. Close commits it; Cleanup discards
// it unless already committed, and so may always be deferred.
type PendingWriter interface {
	io.WriteCloser
	Cleanup() error
}

// Load reads the whole current report.
func Load(st Store) (string, error) {
	r, err := st.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	var sb strings.Builder
	_, err = io.Copy(&sb, r)
	return sb.String(), err
}

// Save stores content as the report, creating or updating as necessary.
func Save(st Store, content string) (rerr error) {
	w, err := st.Update()
	if errors.Is(err, ErrNotExists) {
		w, err = st.Create()
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	if _, err := io.WriteString(w, content); err != nil {
		return err
	}
	return w.Close()
}

// Memory is an in-memory Store. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	cur     string
	defined bool
}

func (ms *Memory) Open() (io.ReadCloser, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !ms.defined {
		return nil, ErrNotExists
	}
	return io.NopCloser(strings.NewReader(ms.cur)), nil
}

func (ms *Memory) Create() (PendingWriter, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.defined {
		return nil, ErrExists
	}
	return &pendingBuffer{sink: ms.set}, nil
}

func (ms *Memory) Update() (PendingWriter, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !ms.defined {
		return nil, ErrNotExists
	}
	return &pendingBuffer{sink: ms.set}, nil
}

func (ms *Memory) set(content string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.cur = content
	ms.defined = true
	return nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) Close() error {
	if pb.closed {
		return nil
	}
	pb.closed = true
	return pb.sink(pb.buf.String())
}

func (pb *pendingBuffer) Cleanup() error {
	pb.closed = true
	return nil
}

// File is a Store backed by a single file. Writes go to a temporary file in
// the same directory, which atomically replaces the report when committed.
type File struct {
	Name string
}

func (fst File) exists() (bool, error) {
	_, err := os.Stat(fst.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (fst File) Open() (io.ReadCloser, error) {
	f, err := os.Open(fst.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExists
	}
	return f, err
}

func (fst File) Create() (PendingWriter, error) {
	if ok, err := fst.exists(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrExists
	}
	return fst.pend()
}

func (fst File) Update() (PendingWriter, error) {
	if ok, err := fst.exists(); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotExists
	}
	return fst.pend()
}

func (fst File) pend() (PendingWriter, error) {
	pf, err := renameio.TempFile(filepath.Dir(fst.Name), fst.Name)
	if err != nil {
		return nil, err
	}
	if err := pf.Chmod(0o644); err != nil {
		pf.Cleanup()
		return nil, err
	}
	return pendingFile{pf}, nil
}

type pendingFile struct{ *renameio.PendingFile }

func (pf pendingFile) Close() error { return pf.CloseAtomicallyReplace() }
