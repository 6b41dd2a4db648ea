package pipeline

import "testing"

func TestGoldTotal(t *testing.T) {
	s := Stats{Gold: map[string]int{"region_a": 300, "region_b": 650}}
	if got := s.GoldTotal(); got != 950 {
		t.Errorf("GoldTotal = %d, want 950", got)
	}
}

func TestGoldTotalEmpty(t *testing.T) {
	if got := (Stats{Gold: map[string]int{}}).GoldTotal(); got != 0 {
		t.Errorf("GoldTotal = %d, want 0", got)
	}
	if got := (Stats{}).GoldTotal(); got != 0 {
		t.Errorf("GoldTotal(nil map) = %d, want 0", got)
	}
}

func TestResultVariants(t *testing.T) {
	ok := Succeed(1000, 950, map[string]int{"a": 1})
	if !ok.OK() {
		t.Error("Succeed result not OK")
	}
	if ok.Failure != nil {
		t.Error("Succeed result carries a failure")
	}

	bad := Fail(StageRun, "disk full")
	if bad.OK() {
		t.Error("Fail result is OK")
	}
	if bad.Stats != nil {
		t.Error("Fail result carries stats")
	}
	if bad.Failure.Stage != StageRun || bad.Failure.Message != "disk full" {
		t.Errorf("failure = %+v, want stage %q message %q", bad.Failure, StageRun, "disk full")
	}
}
