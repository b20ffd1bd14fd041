package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to site command failures so build tooling can branch on
// stable identifiers instead of matching message strings.
const (
	TextCodeValidation = "BLOG_CMD_VALIDATION_FAILED"
	TextCodeCanceled   = "BLOG_CMD_CANCELED"
	TextCodeDeadline   = "BLOG_CMD_DEADLINE_EXCEEDED"
	TextCodeExecution  = "BLOG_CMD_EXECUTION_FAILED"
)

// tagError categorizes a failure once; errors already carrying a go-errors
// wrapper pass through so sitecmd handlers keep their own categorization.
func tagError(err error, category goerrors.Category, msg, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, msg).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tagError(err, goerrors.CategoryValidation, "site command rejected its message", TextCodeValidation)
}

func wrapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return tagError(err, goerrors.CategoryCommand, "site command canceled", TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return tagError(err, goerrors.CategoryCommand, "site command deadline exceeded", TextCodeDeadline)
	default:
		return tagError(err, goerrors.CategoryCommand, "site command context error", TextCodeExecution)
	}
}

func wrapExecuteError(err error) error {
	return tagError(err, goerrors.CategoryCommand, "site command failed", TextCodeExecution)
}
