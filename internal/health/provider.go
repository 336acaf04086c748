package health

import "context"

// PermissionStatus is the outcome of a health-data permission request
type PermissionStatus string

const (
	PermissionGranted     PermissionStatus = "granted"
	PermissionDenied      PermissionStatus = "denied"
	PermissionUnavailable PermissionStatus = "unavailable"
)

// Provider is the device health-data boundary. Implementations wrap a
// platform health API or a companion agent; the core only ever reads
// today's aggregates through it.
type Provider interface {
	// Available reports whether health data can be read on this platform
	Available() bool
	// RequestPermission asks the platform for read access
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	// TodaySteps returns today's cumulative step count
	TodaySteps(ctx context.Context) (int, error)
	// SleepHours returns last night's sleep duration. ok is false when the
	// device recorded nothing.
	SleepHours(ctx context.Context) (float64, bool, error)
	// ActiveCalories returns today's active energy burn
	ActiveCalories(ctx context.Context) (int, error)
}

// Unavailable is the Provider for platforms without a health data source.
// Every permission request reports unavailable and reads are never reached.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	return PermissionUnavailable, nil
}

func (Unavailable) TodaySteps(ctx context.Context) (int, error) { return 0, nil }

func (Unavailable) SleepHours(ctx context.Context) (float64, bool, error) { return 0, false, nil }

func (Unavailable) ActiveCalories(ctx context.Context) (int, error) { return 0, nil }
