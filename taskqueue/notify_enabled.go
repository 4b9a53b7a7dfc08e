//go:build !disable_notify

package taskqueue

import (
	"sync"

	"github.com/labasse/SyncX/status"
)

var (
	notifyMu sync.RWMutex
	notifyCb func(item *WorkItem, started bool)
)

// SetEnterExitNotify installs a process-wide callback invoked by every
// worker before running a work item (started=true) and again after it
// returns (started=false). Pass nil to clear it.
func SetEnterExitNotify(cb func(item *WorkItem, started bool)) status.Status {
	notifyMu.Lock()
	notifyCb = cb
	notifyMu.Unlock()
	return status.Success
}

func notifyEnterExit(item *WorkItem, started bool) {
	notifyMu.RLock()
	cb := notifyCb
	notifyMu.RUnlock()
	if cb != nil {
		cb(item, started)
	}
}
