//go:build windows

package viewer

import (
	"golang.org/x/sys/windows"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

func openNative(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return apperrors.ViewerError{Command: "ShellExecute", Path: path, Cause: err}
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return apperrors.ViewerError{Command: "ShellExecute", Path: path, Cause: err}
	}
	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return apperrors.ViewerError{Command: "ShellExecute", Path: path, Cause: err}
	}
	return nil
}
