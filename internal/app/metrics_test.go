package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if snapshot.DispatchCount != 0 {
		t.Errorf("expected 0 dispatch count, got %d", snapshot.DispatchCount)
	}
	if snapshot.MinDispatchTimeNs != 0 {
		t.Errorf("expected 0 min dispatch time (sentinel handled), got %d", snapshot.MinDispatchTimeNs)
	}
}

func TestMetrics_RecordDispatch(t *testing.T) {
	m := NewMetrics()

	m.RecordDispatch(10 * time.Millisecond)
	m.RecordDispatch(20 * time.Millisecond)
	m.RecordDispatch(5 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.DispatchCount != 3 {
		t.Errorf("expected 3 dispatches, got %d", snapshot.DispatchCount)
	}
	if snapshot.MinDispatchTimeNs != int64(5*time.Millisecond) {
		t.Errorf("expected min 5ms, got %d ns", snapshot.MinDispatchTimeNs)
	}
	if snapshot.MaxDispatchTimeNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxDispatchTimeNs)
	}
	if snapshot.LastDispatchNs != int64(5*time.Millisecond) {
		t.Errorf("expected last 5ms, got %d ns", snapshot.LastDispatchNs)
	}

	expectedAvg := int64(35 * time.Millisecond / 3)
	if snapshot.AvgDispatchTimeNs != expectedAvg {
		t.Errorf("expected avg %d ns, got %d ns", expectedAvg, snapshot.AvgDispatchTimeNs)
	}
}

func TestMetrics_RecordKey(t *testing.T) {
	m := NewMetrics()

	m.RecordKey()
	m.RecordKey()

	snapshot := m.Snapshot()
	if snapshot.KeyCount != 2 {
		t.Errorf("expected 2 keys, got %d", snapshot.KeyCount)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordPrompt()
	m.RecordInsert()
	m.RecordInsert()
	m.RecordCancel()
	m.RecordError()

	snapshot := m.Snapshot()
	if snapshot.PromptCount != 1 {
		t.Errorf("expected 1 prompt, got %d", snapshot.PromptCount)
	}
	if snapshot.InsertCount != 2 {
		t.Errorf("expected 2 inserts, got %d", snapshot.InsertCount)
	}
	if snapshot.CancelCount != 1 {
		t.Errorf("expected 1 cancel, got %d", snapshot.CancelCount)
	}
	if snapshot.ErrorCount != 1 {
		t.Errorf("expected 1 error, got %d", snapshot.ErrorCount)
	}
}

func TestMetricsSnapshot_CancelRate(t *testing.T) {
	tests := []struct {
		name     string
		inserts  int
		cancels  int
		expected float64
	}{
		{"no selections", 0, 0, 0},
		{"all inserted", 4, 0, 0},
		{"all cancelled", 0, 3, 100},
		{"mixed", 3, 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			for i := 0; i < tt.inserts; i++ {
				m.RecordInsert()
			}
			for i := 0; i < tt.cancels; i++ {
				m.RecordCancel()
			}

			rate := m.Snapshot().CancelRate()
			if rate != tt.expected {
				t.Errorf("CancelRate() = %v, expected %v", rate, tt.expected)
			}
		})
	}
}

func TestMetricsSnapshot_AvgDispatchMs(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch(2 * time.Millisecond)

	avg := m.Snapshot().AvgDispatchMs()
	if avg != 2.0 {
		t.Errorf("AvgDispatchMs() = %v, expected 2.0", avg)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.RecordKey()
	m.RecordDispatch(time.Millisecond)
	m.RecordPrompt()
	m.RecordInsert()
	m.Reset()

	snapshot := m.Snapshot()
	if snapshot.KeyCount != 0 {
		t.Errorf("expected 0 keys after reset, got %d", snapshot.KeyCount)
	}
	if snapshot.DispatchCount != 0 {
		t.Errorf("expected 0 dispatches after reset, got %d", snapshot.DispatchCount)
	}
	if snapshot.PromptCount != 0 {
		t.Errorf("expected 0 prompts after reset, got %d", snapshot.PromptCount)
	}
	if snapshot.InsertCount != 0 {
		t.Errorf("expected 0 inserts after reset, got %d", snapshot.InsertCount)
	}
	if snapshot.MinDispatchTimeNs != 0 {
		t.Errorf("expected min sentinel restored after reset, got %d", snapshot.MinDispatchTimeNs)
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	elapsed := timer.Elapsed()
	if elapsed < 0 {
		t.Errorf("Elapsed() = %v, expected non-negative", elapsed)
	}
}

func TestGetMetrics(t *testing.T) {
	m := GetMetrics()
	if m == nil {
		t.Fatal("GetMetrics() returned nil")
	}

	m2 := GetMetrics()
	if m != m2 {
		t.Error("expected GetMetrics() to return same instance")
	}
}
