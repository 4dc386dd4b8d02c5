package changelog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Yates-Labs/clog/internal/commit"
)

var (
	// ErrInvalidPath reports an unusable changelog path.
	ErrInvalidPath = errors.New("invalid changelog path")

	// ErrPermissionDenied reports a missing write permission on the target.
	ErrPermissionDenied = errors.New("changelog write permission denied")

	// ErrMkdir reports a failed parent-directory creation.
	ErrMkdir = errors.New("changelog directory creation failed")
)

// Writer appends rendered entries to changelog files. Appends to the same
// resolved path are serialized so two commits never interleave their entries.
type Writer struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// Backup controls the best-effort copy of the existing file taken before
	// each append. A backup failure is logged and never blocks the append.
	Backup bool

	log *slog.Logger
}

// NewWriter creates a changelog writer.
func NewWriter(backup bool, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{
		locks:  make(map[string]*sync.Mutex),
		Backup: backup,
		log:    log,
	}
}

// pathLock returns the mutex serializing appends to one resolved path.
func (w *Writer) pathLock(resolved string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	lock, ok := w.locks[resolved]
	if !ok {
		lock = &sync.Mutex{}
		w.locks[resolved] = lock
	}
	return lock
}

// Append renders the record and appends it to the changelog at path, creating
// the file with a document header when it does not exist. Prior entries are
// never rewritten or reordered. Parent directories are created as needed.
func (w *Writer) Append(rec *commit.Record, summary string, summaryRequested bool, path string) error {
	if path == "" || strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
	}

	lock := w.pathLock(resolved)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, filepath.Dir(resolved), err)
		}
		return fmt.Errorf("%w: %s: %w", ErrMkdir, filepath.Dir(resolved), err)
	}

	entry := Render(rec, summary, summaryRequested)

	info, err := os.Stat(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return w.writeNew(resolved, entry)
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrInvalidPath, resolved, err)
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, resolved)
	}

	if w.Backup {
		w.backup(resolved)
	}

	file, err := os.OpenFile(resolved, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return classifyOpenErr(resolved, err)
	}
	defer file.Close()

	if _, err := file.WriteString(entry); err != nil {
		return fmt.Errorf("failed to append changelog entry to %s: %w", resolved, err)
	}
	return nil
}

// writeNew creates the changelog with the document header and first entry.
func (w *Writer) writeNew(resolved, entry string) error {
	if err := os.WriteFile(resolved, []byte(DocumentHeader+entry), 0o644); err != nil {
		return classifyOpenErr(resolved, err)
	}
	return nil
}

// backup copies the current changelog to <path>.bak, best effort.
func (w *Writer) backup(resolved string) {
	data, err := os.ReadFile(resolved)
	if err == nil {
		err = os.WriteFile(resolved+".bak", data, 0o644)
	}
	if err != nil {
		w.log.Warn("changelog backup failed, continuing with append",
			slog.String("path", resolved),
			slog.Any("err", err))
	}
}

func classifyOpenErr(resolved string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, resolved, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidPath, resolved, err)
}
