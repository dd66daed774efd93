// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package operation

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Notifier receives operation warnings as soon as they are observed.
type Notifier interface {
	Warn(scope Scope, operationID string, w Warning)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(scope Scope, operationID string, w Warning)

func (f NotifierFunc) Warn(scope Scope, operationID string, w Warning) {
	f(scope, operationID, w)
}

type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// WriterNotifier prints one line per warning to w.
func WriterNotifier(w io.Writer) Notifier {
	return &writerNotifier{w: w}
}

func (n *writerNotifier) Warn(_ Scope, operationID string, w Warning) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "WARNING: %s (operation %s)\n", w.Message, operationID)
}

type logNotifier struct {
	logger *zap.Logger
}

// LogNotifier logs every warning at warn level.
func LogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Warn(scope Scope, operationID string, w Warning) {
	n.logger.Warn(w.Message,
		zap.String("operation", operationID),
		zap.Stringer("scope", scope),
		zap.String("code", w.Code),
	)
}

type nopNotifier struct{}

func (nopNotifier) Warn(Scope, string, Warning) {}
