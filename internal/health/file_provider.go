package health

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// fileSnapshot is the payload a companion agent drops for the core to read
type fileSnapshot struct {
	Steps          int      `json:"steps"`
	SleepHours     *float64 `json:"sleep_hours,omitempty"`
	ActiveCalories int      `json:"active_calories"`
}

// FileProvider reads health aggregates from a JSON snapshot file written by
// a companion agent. It stands in for a platform health API during
// development and on the desktop.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Available() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *FileProvider) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	if !p.Available() {
		return PermissionUnavailable, nil
	}
	return PermissionGranted, nil
}

func (p *FileProvider) read() (fileSnapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fileSnapshot{}, fmt.Errorf("failed to read health snapshot: %w", err)
	}

	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fileSnapshot{}, fmt.Errorf("failed to parse health snapshot: %w", err)
	}
	return snap, nil
}

func (p *FileProvider) TodaySteps(ctx context.Context) (int, error) {
	snap, err := p.read()
	if err != nil {
		return 0, err
	}
	return snap.Steps, nil
}

func (p *FileProvider) SleepHours(ctx context.Context) (float64, bool, error) {
	snap, err := p.read()
	if err != nil {
		return 0, false, err
	}
	if snap.SleepHours == nil {
		return 0, false, nil
	}
	return *snap.SleepHours, true, nil
}

func (p *FileProvider) ActiveCalories(ctx context.Context) (int, error) {
	snap, err := p.read()
	if err != nil {
		return 0, err
	}
	return snap.ActiveCalories, nil
}
