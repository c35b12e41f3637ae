package logger

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"go.uber.org/multierr"
)

// envLine is one descriptor in the block written when a destination opens
type envLine struct {
	name  string
	probe func() (string, error)
}

func (l *Logger) environment() []envLine {
	return []envLine{
		{"Process", func() (string, error) {
			return fmt.Sprintf("%s (pid %d)", filepath.Base(os.Args[0]), os.Getpid()), nil
		}},
		{"Runtime", func() (string, error) {
			return fmt.Sprintf("%s %s/%s, NumCPU %d, GOMAXPROCS %d",
				runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0)), nil
		}},
		{"OS", osVersion},
		{"User", func() (string, error) {
			u, err := user.Current()
			if err != nil {
				return "", err
			}
			host, err := os.Hostname()
			if err != nil {
				return "", err
			}
			return u.Username + "@" + host, nil
		}},
		{"Working directory", os.Getwd},
		{"Executable", os.Executable},
		{"Version", l.buildVersion},
		{"Log level", func() (string, error) {
			lvl := l.Level()
			return fmt.Sprintf("%s (%d)", lvl, int(lvl)), nil
		}},
	}
}

func (l *Logger) buildVersion() (string, error) {
	if l.version != "" {
		return l.version, nil
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", fmt.Errorf("build info not embedded")
	}
	return info.Main.Path + " " + info.Main.Version, nil
}

// writeEnvironmentLocked writes one line per descriptor. A failing probe
// is reported in its line; only writer failures are returned.
func (l *Logger) writeEnvironmentLocked() error {
	var err error
	for _, e := range l.environment() {
		value, probeErr := e.probe()
		if probeErr != nil {
			value = fmt.Sprintf("unavailable (%v)", probeErr)
		}
		err = multierr.Append(err, l.writeLocked(e.name+": "+value))
	}
	return err
}
