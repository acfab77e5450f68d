package prog

import (
	"fmt"
	"io"
	"os"

	"github.com/humidscope/setedit/pkg/logutil"
	"github.com/humidscope/setedit/pkg/schema"
	"github.com/humidscope/setedit/pkg/settings"
	"github.com/humidscope/setedit/pkg/store"
	"github.com/humidscope/setedit/pkg/term"
)

var logger = logutil.GetLogger("prog")

// A session holds the settings declared by the schema file, backed by the
// database.
type session struct {
	schema *schema.Doc
	mgr    *settings.Manager
	st     store.DBStore
}

// Opens the schema and database named by the flags. The settings take their
// default values, overlaid with the stored ones.
func openSession(f *Flags) (*session, error) {
	if f.Schema == "" {
		return nil, BadUsage("--schema is required")
	}
	if f.DB == "" {
		return nil, BadUsage("--db is required")
	}
	doc, err := schema.Load(f.Schema)
	if err != nil {
		return nil, err
	}
	// The Manager's settings hold the only references to the value cells.
	_, mgr, err := schema.Build(doc)
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(f.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	mgr.ApplyDefaults()
	if err := mgr.Load(st); err != nil {
		st.Close()
		return nil, err
	}
	logger.Debugf("opened session with %d settings from %s", mgr.Len(), f.Schema)
	return &session{doc, mgr, st}, nil
}

func (s *session) Close() error { return s.st.Close() }

// The stream the operator talks over. Reads come from a FileStream so that
// Stop can interrupt them; writes go to out.
type operatorStream struct {
	*term.FileStream
	out     io.Writer
	cleanup func()
}

func (s *operatorStream) Write(p []byte) (int, error) { return s.out.Write(p) }

// Stop makes pending and future reads fail with term.ErrStopped.
func (s *operatorStream) Stop() { s.FileStream.Close() }

// Close stops the stream, restores the terminal and closes the device.
func (s *operatorStream) Close() { s.cleanup() }

// Opens the stream the operator talks over: the named device, or stdin and
// stdout when there is none. Terminals are put into raw mode until the stream
// is closed.
func openStream(fds [3]*os.File, device string) (*operatorStream, error) {
	if device == "" {
		return newOperatorStream(fds[0], fds[1], func() {})
	}
	file, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	logger.Debugf("opened device %s, terminal: %v", device, term.IsTerminal(file))
	s, err := newOperatorStream(file, file, func() { file.Close() })
	if err != nil {
		file.Close()
		return nil, err
	}
	return s, nil
}

func newOperatorStream(in *os.File, out io.Writer, release func()) (*operatorStream, error) {
	restore, err := term.SetupRaw(in)
	if err != nil {
		return nil, err
	}
	fs, err := term.NewFileStream(in)
	if err != nil {
		restoreTerm(restore)
		return nil, err
	}
	return &operatorStream{fs, out, func() {
		fs.Close()
		restoreTerm(restore)
		release()
	}}, nil
}

func restoreTerm(restore func() error) {
	if err := restore(); err != nil {
		logger.Warnf("cannot restore terminal: %v", err)
	}
}
