// Package logger builds the diagnostic logger shared by the catalog, the
// reconciler, the importer and the watcher.
//
// Diagnostics go to stderr so they never mix with command output on stdout,
// which scripts pipe into other programs (`fusen query anime | xargs mpv`).
// Without --verbose only warnings and errors are shown. JSON output (-o json)
// switches the encoder so a caller parsing stdout can also parse stderr.
//
// The audit trail of who ran what is a separate concern, see internal/log.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	global = zap.NewNop()
)

// Options configures New.
type Options struct {
	Verbose bool      // debug level instead of warn
	JSON    bool      // JSON encoder instead of console
	Output  io.Writer // defaults to os.Stderr
}

// New builds a logger from opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zap.WarnLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	enc := zapcore.NewConsoleEncoder(encCfg)
	if opts.JSON {
		prod := zap.NewProductionEncoderConfig()
		prod.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(prod)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level)).Named("fusen")
}

// Init replaces the global logger. Called once from the root command.
func Init(opts Options) *zap.Logger {
	l := New(opts)
	mu.Lock()
	global = l
	mu.Unlock()
	return l
}

// L returns the global logger. Before Init it discards everything.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return global
}

// Sync flushes the global logger. Errors from syncing stderr are ignored;
// they are common on terminals and carry no information.
func Sync() {
	_ = L().Sync()
}
