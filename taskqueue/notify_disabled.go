//go:build disable_notify

package taskqueue

import "github.com/labasse/SyncX/status"

// SetEnterExitNotify always fails: this build was compiled with
// notification capabilities disabled.
func SetEnterExitNotify(cb func(item *WorkItem, started bool)) status.Status {
	return status.FeatureNotEnabled
}

func notifyEnterExit(item *WorkItem, started bool) {}
