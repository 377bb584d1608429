// Package config holds the global, read-only-during-compression settings:
// compression method, approximation parameters, and validation flags.
// Settings are read once per compress call and never mutated by the
// engine itself — only a caller's explicit Update call changes them,
// following the same functional-options pattern used elsewhere in this
// module for per-call configuration.
package config

import (
	"sync/atomic"

	"github.com/aurelienfalco/hrank/compress"
	"github.com/aurelienfalco/hrank/debugdump"
	"github.com/aurelienfalco/hrank/dense"
	"github.com/aurelienfalco/hrank/scalar"
)

// Settings is the immutable snapshot a caller translates, via ParamsFor,
// into the compress.Params a compress.Compress call reads.
type Settings struct {
	Method Method

	// AssemblyEpsilon is ε in the Frobenius-norm stopping test.
	AssemblyEpsilon float64
	// KMax bounds the rank produced by ACA-full, ACA-partial and ACA+;
	// the SVD method does not read it.
	KMax int

	// ValidateCompression enables the post-compression norm-check path.
	ValidateCompression bool
	// ValidationErrorThreshold is θ: emit a diagnostic when
	// ‖M - A·Bᵗ‖_F > θ·‖M‖_F.
	ValidationErrorThreshold float64
	// ValidationRerun re-runs compression once more on a norm-threshold
	// violation and returns the re-run's result.
	ValidationRerun bool
	// ValidationDumpPath, if non-empty, triggers an on-disk dump of M and
	// the evaluated Rk product on a norm-threshold violation.
	ValidationDumpPath string
}

// Method is an alias of compress.Method, kept local to config so callers
// configuring global settings do not need to import compress directly for
// the common case.
type Method = compress.Method

// DefaultSettings returns the conservative defaults used when no caller
// has configured anything.
func DefaultSettings() Settings {
	return Settings{
		Method:                   compress.MethodAcaPlus,
		AssemblyEpsilon:          1e-6,
		KMax:                     0, // 0 means "no explicit cap" (min(rows,cols) applies)
		ValidateCompression:      false,
		ValidationErrorThreshold: 1e-3,
	}
}

var current atomic.Pointer[Settings]

func init() {
	s := DefaultSettings()
	current.Store(&s)
}

// Load returns the current global settings snapshot. Safe to call
// concurrently with Update.
func Load() Settings {
	return *current.Load()
}

// Option mutates a Settings value being built by Update or New.
type Option func(*Settings)

// WithMethod overrides the compression method.
func WithMethod(m Method) Option {
	return func(s *Settings) { s.Method = m }
}

// WithAssemblyEpsilon overrides ε.
func WithAssemblyEpsilon(eps float64) Option {
	return func(s *Settings) { s.AssemblyEpsilon = eps }
}

// WithKMax overrides the rank cap.
func WithKMax(kMax int) Option {
	return func(s *Settings) { s.KMax = kMax }
}

// WithValidation enables validation mode with the given error threshold.
func WithValidation(threshold float64) Option {
	return func(s *Settings) {
		s.ValidateCompression = true
		s.ValidationErrorThreshold = threshold
	}
}

// WithValidationRerun enables the optional re-run on a norm violation.
func WithValidationRerun() Option {
	return func(s *Settings) { s.ValidationRerun = true }
}

// WithValidationDump sets the on-disk dump path used on a norm violation.
func WithValidationDump(path string) Option {
	return func(s *Settings) { s.ValidationDumpPath = path }
}

// New builds a Settings value from the current defaults plus opts,
// without touching the global snapshot — for a one-off compress call that
// should not affect other concurrent callers.
func New(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Update atomically replaces the global settings snapshot. The caller is
// responsible for not calling Update concurrently with an in-flight
// compress call that should observe the old settings; Update itself is
// torn-update-safe (a concurrent Load always sees either the old or the
// new snapshot, never a mix).
func Update(opts ...Option) {
	s := New(opts...)
	current.Store(&s)
}

// ParamsFor translates a Settings snapshot into the compress.Params[T] a
// Compress call for scalar kind T reads, wiring ValidationDumpPath (if
// set) through to debugdump via DumpSinkFor.
func ParamsFor[T scalar.Number](s Settings) compress.Params[T] {
	return compress.Params[T]{
		Epsilon:                  s.AssemblyEpsilon,
		KMax:                     s.KMax,
		Validate:                 s.ValidateCompression,
		ValidationErrorThreshold: s.ValidationErrorThreshold,
		ValidationRerun:          s.ValidationRerun,
		Dump:                     DumpSinkFor[T](s),
	}
}

// DumpSinkFor builds the debug-dump hook for s.ValidationDumpPath, or nil
// if no path is configured. Two files are written, suffixed .block and
// .approx, matching debugdump's header-plus-column-major-payload format.
func DumpSinkFor[T scalar.Number](s Settings) func(m, approx *dense.Matrix[T]) {
	if s.ValidationDumpPath == "" {
		return nil
	}
	return func(m, approx *dense.Matrix[T]) {
		_ = debugdump.WriteFile(s.ValidationDumpPath+".block", int32(scalar.KindOf[T]()), m)
		_ = debugdump.WriteFile(s.ValidationDumpPath+".approx", int32(scalar.KindOf[T]()), approx)
	}
}
