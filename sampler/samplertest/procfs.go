// Package samplertest builds fake proc filesystems for tests.
package samplertest

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultStat reports two CPUs plus the aggregate line.
const DefaultStat = `cpu  301854 612 111922 8979004 3552 2 3944 0 0 0
cpu0 44490 19 21045 1087069 220 1 3410 0 0 0
cpu1 47869 23 16474 1110787 591 0 46 0 0 0
intr 8885917 17 0 0 0 0 0 0 0 1 79281 0 0 0 0 0 0 0 231237 0 0 0 0 250586 103 0 0
ctxt 38014093
btime 1418183276
processes 26442
procs_running 2
procs_blocked 1
`

// DefaultMeminfo reports 15 GiB total and 8 GiB available.
const DefaultMeminfo = `MemTotal:       15728640 kB
MemFree:         2097152 kB
MemAvailable:    8388608 kB
Buffers:          262144 kB
Cached:          4194304 kB
`

// VimStat and ShellStat are /proc/<pid>/stat lines for the default processes.
const (
	VimStat   = "26231 (vim) R 5392 7446 5392 34835 7446 4218880 32533 309516 26 82 1677 44 158 99 20 0 1 0 82375 56274944 1981 18446744073709551615 4194304 6294284 140736914091744 140736914087944 139965136429984 0 0 12288 1870679807 0 0 0 17 0 0 0 31 0 0 8391624 8481048 16420864 140736914093252 140736914093279 140736914093279 140736914096107 0\n"
	ShellStat = "5392 (bash) S 5390 5392 5392 34835 7446 4218880 1000 20000 0 0 120 30 40 20 20 0 1 0 80000 23000000 900 18446744073709551615 4194304 6294284 140736914091744 140736914087944 139965136429984 0 65536 3670020 1266777851 0 0 0 17 1 0 0 0 0 0 8391624 8481048 16420864 140736914093252 140736914093279 140736914093279 140736914096107 0\n"
)

// NewProcFS writes a proc tree with DefaultStat, DefaultMeminfo and the
// vim and bash processes into a temporary directory and returns its path.
func NewProcFS(t testing.TB) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, map[string]string{
		"stat":       DefaultStat,
		"meminfo":    DefaultMeminfo,
		"26231/stat": VimStat,
		"5392/stat":  ShellStat,
	})
	return root
}

// WriteFiles writes each relative path under root, creating directories.
func WriteFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// Remove deletes a relative path under root.
func Remove(t testing.TB, root, name string) {
	t.Helper()
	if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
		t.Fatalf("remove %s: %v", name, err)
	}
}
