package sampler

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/prometheus/procfs"
	"go.uber.org/multierr"
)

// Process is one row of the process table
type Process struct {
	PID           int
	PPID          int
	Name          string
	State         string
	Threads       int
	ResidentBytes int
	CPUSeconds    float64
}

// OpenProcFS opens the proc filesystem at mountPoint (default /proc)
func OpenProcFS(mountPoint string) (procfs.FS, error) {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	return procfs.NewFS(mountPoint)
}

// ReadProcessTable lists every process sorted by PID. Processes that
// exit while the table is read are skipped silently; other per-process
// failures are skipped and returned combined next to the partial table.
func ReadProcessTable(pfs procfs.FS) ([]Process, error) {
	procs, err := pfs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	var errs error
	table := make([]Process, 0, len(procs))
	for _, p := range procs {
		st, err := p.Stat()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = multierr.Append(errs, fmt.Errorf("read process %d: %w", p.PID, err))
			}
			continue
		}

		table = append(table, Process{
			PID:           p.PID,
			PPID:          st.PPID,
			Name:          st.Comm,
			State:         st.State,
			Threads:       st.NumThreads,
			ResidentBytes: st.ResidentMemory(),
			CPUSeconds:    st.CPUTime(),
		})
	}

	sort.Slice(table, func(i, j int) bool { return table[i].PID < table[j].PID })
	return table, errs
}
