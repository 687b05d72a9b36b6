// Package errors provides the error taxonomy shared across the fleet
// synchronization engine: a handful of sentinel prerequisite errors plus
// structured error types for kinds that carry a payload (exit codes,
// failed paths, batch aggregates).
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Generic sentinels used by lower-level helpers.
var ErrNotFound = errors.New("not found")

// Git-specific sentinels. These wrap a fixed message with no payload;
// callers that need a path or ref attach it via WrapWithMessage or by
// using one of the structured types below.
var (
	ErrNotGitRepository   = errors.New("not a git repository")
	ErrDirtyWorkingTree   = errors.New("working tree has uncommitted changes")
	ErrBranchExists       = errors.New("branch already exists")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrRemoteNotFound     = errors.New("remote not found")
	ErrMergeConflict      = errors.New("merge conflict")
	ErrDetachedHead       = errors.New("repository is in detached HEAD state")
	ErrDirAlreadyInited   = errors.New("directory already has a manifest")
	ErrConfigFileNotFound = errors.New("manifest file not found")
	ErrCreateThreadPool   = errors.New("failed to create worker pool")
)

// Wrap associates err with target so that Is(Wrap(err, target), target)
// holds, preserving err's message when present. A nil err returns target
// unchanged; a nil target returns err unchanged.
func Wrap(err, target error) error {
	if err == nil {
		return target
	}
	if target == nil {
		return err
	}
	return &wrapped{msg: err.Error(), cause: err, target: target}
}

// WrapWithMessage prefixes err with msg, preserving Is/As behavior against
// err. Returns nil when err is nil.
func WrapWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether err or any error in its chain matches target, via
// the standard library's errors.Is, plus the wrapped-target convention
// used by Wrap.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

type wrapped struct {
	msg    string
	cause  error
	target error
}

func (w *wrapped) Error() string {
	if w.msg == "" {
		return w.target.Error()
	}
	return w.msg
}

func (w *wrapped) Unwrap() error {
	return w.cause
}

func (w *wrapped) Is(target error) bool {
	return target == w.target
}

// DirNotFoundError is returned when an operation's base directory does
// not exist.
type DirNotFoundError struct {
	Path string
}

func (e *DirNotFoundError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// LoadConfigFailedError wraps a manifest parse or IO failure.
type LoadConfigFailedError struct {
	Path  string
	Cause error
}

func (e *LoadConfigFailedError) Error() string {
	return fmt.Sprintf("load config failed (%s): %v", e.Path, e.Cause)
}

func (e *LoadConfigFailedError) Unwrap() error {
	return e.Cause
}

// ProcessSpawnError is returned when the git binary could not be
// launched at all (as opposed to exiting non-zero).
type ProcessSpawnError struct {
	Cause error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to spawn git: %v", e.Cause)
}

func (e *ProcessSpawnError) Unwrap() error {
	return e.Cause
}

// GitCommandError is returned when git exits non-zero; Message carries
// the last non-empty stderr line.
type GitCommandError struct {
	Args     []string
	ExitCode int
	Message  string
}

func (e *GitCommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("git %s: exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("git %s: exit code %d: %s", strings.Join(e.Args, " "), e.ExitCode, e.Message)
}

// NotARepositoryError is a prerequisite violation for operations that
// require an existing repository at Path.
type NotARepositoryError struct {
	Path string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("not a repository: %s", e.Path)
}

func (e *NotARepositoryError) Is(target error) bool {
	return target == ErrNotGitRepository
}

// RemoteRefInvalidError is returned when resolution produced no
// matching remote ref.
type RemoteRefInvalidError struct {
	Ref string
}

func (e *RemoteRefInvalidError) Error() string {
	return fmt.Sprintf("remote ref invalid: %s", e.Ref)
}

// OpsError is the batch aggregate returned by the scheduler: one
// message per failed repo.
type OpsError struct {
	Prefix string
	Errors []string
}

func (e *OpsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Prefix, strings.Join(e.Errors, "; "))
}

// ConfigSaveError is returned when the manifest's atomic write failed;
// Content is preserved so the caller can retry without re-editing.
type ConfigSaveError struct {
	Path    string
	Content string
	Cause   error
}

func (e *ConfigSaveError) Error() string {
	return fmt.Sprintf("save config failed (%s): %v", e.Path, e.Cause)
}

func (e *ConfigSaveError) Unwrap() error {
	return e.Cause
}

// ManifestValidationError is returned when a manifest entry fails
// field-level validation (an unsafe remote URL, a malformed branch
// name) on load, naming the offending repo and field.
type ManifestValidationError struct {
	Local string
	Field string
	Cause error
}

func (e *ManifestValidationError) Error() string {
	return fmt.Sprintf("manifest entry %q: invalid %s: %v", e.Local, e.Field, e.Cause)
}

func (e *ManifestValidationError) Unwrap() error {
	return e.Cause
}
