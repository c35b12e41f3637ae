//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package logger

import "runtime"

func osVersion() (string, error) {
	return runtime.GOOS, nil
}
