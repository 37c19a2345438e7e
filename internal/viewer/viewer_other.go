//go:build !windows

package viewer

import (
	"errors"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

func openNative(path string) error {
	return apperrors.ViewerError{Command: "ShellExecute", Path: path, Cause: errors.New("not available on this platform")}
}
