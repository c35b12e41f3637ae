//go:build linux || darwin || freebsd || netbsd || openbsd

package logger

import (
	"strings"

	"golang.org/x/sys/unix"
)

func osVersion() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return strings.Join([]string{
		unix.ByteSliceToString(uts.Sysname[:]),
		unix.ByteSliceToString(uts.Release[:]),
		unix.ByteSliceToString(uts.Version[:]),
		unix.ByteSliceToString(uts.Machine[:]),
	}, " "), nil
}
