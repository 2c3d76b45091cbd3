package scheduler

import (
	"testing"

	"stylescout-go/config"
)

// dummyLister implements UserLister but has no connected users
type dummyLister struct{}

func (d *dummyLister) ListCredentialUserIDs() ([]uint, error) { return nil, nil }

func TestSchedulerRestart(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, IntervalMinutes: 60}
	sched := NewScheduler(cfg, &dummyLister{}, nil)

	if err := sched.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if !sched.IsRunning() {
		t.Fatalf("scheduler should be running after Start")
	}
	if err := sched.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if sched.IsRunning() {
		t.Fatalf("scheduler should not be running after Stop")
	}
	if err := sched.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if !sched.IsRunning() {
		t.Fatalf("scheduler should be running after second Start")
	}
	// context should be active
	if sched.ctx == nil || sched.ctx.Err() != nil {
		t.Fatalf("scheduler context should be active after restart")
	}
	sched.Stop()
}

func TestSchedulerDoubleStart(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, IntervalMinutes: 60}
	sched := NewScheduler(cfg, &dummyLister{}, nil)

	if err := sched.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := sched.Start(); err == nil {
		t.Fatalf("second Start without Stop should fail")
	}
	sched.Stop()
}

func TestSchedulerNextRun(t *testing.T) {
	cfg := &config.SchedulerConfig{Enabled: true, IntervalMinutes: 5}
	sched := NewScheduler(cfg, &dummyLister{}, nil)

	if !sched.GetNextRun().IsZero() {
		t.Fatalf("next run should be zero before Start")
	}
	if err := sched.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if sched.GetNextRun().IsZero() {
		t.Fatalf("next run should be set while running")
	}
	sched.Stop()
}
