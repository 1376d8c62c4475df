package syntax

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Code identifies the kind of problem a Diagnostic describes.
type Code uint8

const (
	// UnresolvedContext: a context switch or IncludeRules names a context
	// that cannot be found.
	UnresolvedContext Code = iota + 1
	// UnresolvedKeywordInclude: a keyword list include names a list that
	// cannot be found.
	UnresolvedKeywordInclude
	// UnresolvedDefinition: a `##Name` reference names an unknown definition.
	UnresolvedDefinition
	// UnresolvedKeywordList: a Keyword rule names an unknown list.
	UnresolvedKeywordList
	// LoadFailed: a definition's loader returned an error.
	LoadFailed
	// PopPastRoot: a context switch tried to pop the initial context.
	PopPastRoot
	// InvalidPattern: a regular expression rule does not compile.
	InvalidPattern
)

var codeNames = map[Code]string{
	UnresolvedContext:        "unresolved-context",
	UnresolvedKeywordInclude: "unresolved-keyword-include",
	UnresolvedDefinition:     "unresolved-definition",
	UnresolvedKeywordList:    "unresolved-keyword-list",
	LoadFailed:               "load-failed",
	PopPastRoot:              "pop-past-root",
	InvalidPattern:           "invalid-pattern",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// A Diagnostic reports a recoverable problem found while resolving or
// running a definition. Nothing in this package treats a Diagnostic as
// fatal.
type Diagnostic struct {
	Severity   Severity
	Code       Code
	Definition string // Name of the definition in which the problem was found
	Subject    string // The unresolved name, or the offending directive
	Message    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (%s in %s)", d.Severity, d.Code, d.Message, d.Subject, d.Definition)
}

// A Reporter receives diagnostics. Highlighters sharing a Definition may
// report from several goroutines at once.
type Reporter interface {
	Report(Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// LogReporter writes every Diagnostic to a logrus logger.
type LogReporter struct {
	Logger logrus.FieldLogger
}

func NewLogReporter(logger logrus.FieldLogger) *LogReporter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) Report(d Diagnostic) {
	entry := r.Logger.WithFields(logrus.Fields{
		"code":       d.Code.String(),
		"definition": d.Definition,
		"subject":    d.Subject,
	})
	switch d.Severity {
	case SeverityInfo:
		entry.Info(d.Message)
	case SeverityError:
		entry.Error(d.Message)
	default:
		entry.Warn(d.Message)
	}
}

// Collector keeps every Diagnostic it receives, in order. It is safe for
// concurrent use; read Diagnostics only once reporting has stopped.
type Collector struct {
	mu          sync.Mutex
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Diagnostics = append(c.Diagnostics, d)
}

// Len is the number of diagnostics collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Diagnostics)
}

// Has reports whether a Diagnostic with the given code and subject was
// collected. An empty subject matches any subject.
func (c *Collector) Has(code Code, subject string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.Diagnostics {
		if d.Code == code && (subject == "" || d.Subject == subject) {
			return true
		}
	}
	return false
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Diagnostics = c.Diagnostics[:0]
}

type discardReporter struct{}

func (discardReporter) Report(Diagnostic) {}

func warn(r Reporter, code Code, def *Definition, subject, format string, args ...interface{}) {
	var defName string
	if def != nil {
		defName = def.name
	}
	r.Report(Diagnostic{
		Severity:   SeverityWarning,
		Code:       code,
		Definition: defName,
		Subject:    subject,
		Message:    fmt.Sprintf(format, args...),
	})
}
