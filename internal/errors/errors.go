// Package errors provides structured error handling for redeye operations.
// It defines error codes, error types, and provides utilities for creating
// and handling errors with context and structured information.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown    ErrorCode = "UNKNOWN"
	CodeValidation ErrorCode = "VALIDATION"
	CodeCanceled   ErrorCode = "CANCELED"

	// Tool and installer errors.
	CodeMissingTool      ErrorCode = "MISSING_TOOL"
	CodeNoPackageManager ErrorCode = "NO_PACKAGE_MANAGER"
	CodeInstallFailed    ErrorCode = "INSTALL_FAILED"
	CodeUpdateFailed     ErrorCode = "UPDATE_FAILED"

	// Process execution errors.
	CodeLaunchFailed ErrorCode = "LAUNCH_FAILED"
	CodeExitNonZero  ErrorCode = "EXIT_NON_ZERO"

	// User input errors.
	CodeInvalidSelection ErrorCode = "INVALID_SELECTION"
	CodeEmptyInput       ErrorCode = "EMPTY_INPUT"

	// File system errors.
	CodeDirectoryCreate ErrorCode = "DIRECTORY_CREATE"
)

// ToolError represents an error involving a required external tool.
type ToolError struct {
	Code    ErrorCode
	Message string
	Tool    string
	Cause   error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("[%s] %s (tool: %s)", e.Code, e.Message, e.Tool)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// NewToolError creates a new tool error with the specified code and message.
func NewToolError(code ErrorCode, message, tool string) *ToolError {
	return &ToolError{
		Code:    code,
		Message: message,
		Tool:    tool,
	}
}

// WrapToolError wraps an existing error as a tool error.
func WrapToolError(code ErrorCode, message, tool string, err error) *ToolError {
	return &ToolError{
		Code:    code,
		Message: message,
		Tool:    tool,
		Cause:   err,
	}
}

// InstallError represents a package installation failure.
type InstallError struct {
	Code    ErrorCode
	Message string
	Manager string
	Cause   error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.Manager != "" {
		return fmt.Sprintf("[%s] %s (manager: %s)", e.Code, e.Message, e.Manager)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *InstallError) Unwrap() error {
	return e.Cause
}

// NewInstallError creates a new install error.
func NewInstallError(code ErrorCode, message, manager string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Manager: manager,
	}
}

// WrapInstallError wraps an existing error as an install error.
func WrapInstallError(code ErrorCode, message, manager string, err error) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Manager: manager,
		Cause:   err,
	}
}

// LaunchError represents a child-process launch or execution failure.
type LaunchError struct {
	Code    ErrorCode
	Message string
	Command string
	Cause   error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("[%s] %s (command: %s)", e.Code, e.Message, e.Command)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// WrapLaunchError wraps an existing error as a launch error.
func WrapLaunchError(code ErrorCode, message, command string, err error) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
		Command: command,
		Cause:   err,
	}
}

// InputError represents invalid interactive user input. It is always
// recovered locally by re-prompting; it exists so handlers can distinguish
// bad input from real failures.
type InputError struct {
	Code    ErrorCode
	Message string
	Value   string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("[%s] %s (value: %q)", e.Code, e.Message, e.Value)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewInputError creates a new input error.
func NewInputError(code ErrorCode, message, value string) *InputError {
	return &InputError{
		Code:    code,
		Message: message,
		Value:   value,
	}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ToolError:
		return e.Code
	case *InstallError:
		return e.Code
	case *LaunchError:
		return e.Code
	case *InputError:
		return e.Code
	}
	return CodeUnknown
}

// IsFatal determines if an error indicates a condition that should stop
// startup. Only missing tooling that could not be installed is fatal; all
// other errors are recovered inside the interactive loop.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeMissingTool, CodeNoPackageManager, CodeInstallFailed:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrMissingTool creates an error for a required tool absent from the search path.
func ErrMissingTool(tool string) *ToolError {
	return NewToolError(CodeMissingTool, "Required tool not found on PATH", tool)
}

// ErrNoPackageManager creates an error for an unrecognized environment.
func ErrNoPackageManager() *InstallError {
	return NewInstallError(CodeNoPackageManager, "No supported package manager detected", "")
}

// ErrInstallFailed creates an error for a failed installation attempt.
func ErrInstallFailed(manager string, err error) *InstallError {
	return WrapInstallError(CodeInstallFailed, "Package installation failed", manager, err)
}

// ErrLaunchFailed creates an error for a child process that could not be started.
func ErrLaunchFailed(command string, err error) *LaunchError {
	return WrapLaunchError(CodeLaunchFailed, "Failed to launch command", command, err)
}

// ErrInvalidSelection creates an error for an out-of-range or non-numeric menu selection.
func ErrInvalidSelection(value string) *InputError {
	return NewInputError(CodeInvalidSelection, "Invalid selection", value)
}

// ErrEmptyInput creates an error for a required field left empty.
func ErrEmptyInput(field string) *InputError {
	return NewInputError(CodeEmptyInput, fmt.Sprintf("%s cannot be empty", field), "")
}
