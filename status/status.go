// Package status defines the canonical status codes returned by every
// SyncX primitive. The numeric values are part of the ABI inherited from
// the original C library and must not be renumbered.
package status

import "fmt"

// Status is the word-sized result code every SyncX operation returns.
// A Status is not an error by itself (Success is a valid, non-error
// Status); call Err to adapt it to the standard error interface.
type Status uint8

// Canonical status codes. Values match the original library's ABI.
const (
	Success           Status = 0x00
	Deleted           Status = 0x01
	WaitError         Status = 0x04
	PtrError          Status = 0x03
	SizeError         Status = 0x05
	QueueError        Status = 0x09
	QueueFull         Status = 0x0B
	SemaphoreError    Status = 0x0C
	NoInstance        Status = 0x0D
	ThreadError       Status = 0x0E
	PriorityError     Status = 0x0F
	StartError        Status = 0x10
	CallerError       Status = 0x13
	MutexError        Status = 0x1C
	NotAvailable      Status = 0x1D
	NotOwned          Status = 0x1E
	InheritError      Status = 0x1F
	WaitAborted       Status = 0x1A
	ThreshError       Status = 0x18
	FeatureNotEnabled Status = 0xFF
)

var names = map[Status]string{
	Success:           "SUCCESS",
	Deleted:           "DELETED",
	WaitError:         "WAIT_ERROR",
	PtrError:          "PTR_ERROR",
	SizeError:         "SIZE_ERROR",
	QueueError:        "QUEUE_ERROR",
	QueueFull:         "QUEUE_FULL",
	SemaphoreError:    "SEMAPHORE_ERROR",
	NoInstance:        "NO_INSTANCE",
	ThreadError:       "THREAD_ERROR",
	PriorityError:     "PRIORITY_ERROR",
	StartError:        "START_ERROR",
	CallerError:       "CALLER_ERROR",
	MutexError:        "MUTEX_ERROR",
	NotAvailable:      "NOT_AVAILABLE",
	NotOwned:          "NOT_OWNED",
	InheritError:      "INHERIT_ERROR",
	WaitAborted:       "WAIT_ABORTED",
	ThreshError:       "THRESH_ERROR",
	FeatureNotEnabled: "FEATURE_NOT_ENABLED",
}

// String implements fmt.Stringer, returning the status's ABI name.
func (s Status) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(0x%02X)", uint8(s))
}

// Ok reports whether s is Success.
func (s Status) Ok() bool {
	return s == Success
}

// Err adapts s to the standard error interface, returning nil for Success.
func (s Status) Err() error {
	if s.Ok() {
		return nil
	}
	return &Error{Status: s}
}

// Error wraps a non-success Status as a standard error.
type Error struct {
	Status Status
}

func (e *Error) Error() string {
	return e.Status.String()
}
