package input

import (
	"testing"
	"time"

	"github.com/lixenwraith/lane-catcher/engine"
)

func collect() (func(engine.Lane), chan engine.Lane) {
	ch := make(chan engine.Lane, 16)
	return func(l engine.Lane) { ch <- l }, ch
}

func expectNone(t *testing.T, ch chan engine.Lane, wait time.Duration) {
	t.Helper()
	select {
	case l := <-ch:
		t.Fatalf("Unexpected forward %v", l)
	case <-time.After(wait):
	}
}

func TestStabilizerImmediate(t *testing.T) {
	forward, ch := collect()
	s := NewStabilizer(0, forward)

	s.Submit("Left")
	s.Submit("Left")
	s.Submit("up")
	s.Submit("Center")

	if got := <-ch; got != engine.LaneLeft {
		t.Errorf("Expected Left, got %v", got)
	}
	if got := <-ch; got != engine.LaneCenter {
		t.Errorf("Expected Center, got %v", got)
	}
	expectNone(t, ch, 10*time.Millisecond)
}

func TestStabilizerSettlesJitter(t *testing.T) {
	forward, ch := collect()
	s := NewStabilizer(30*time.Millisecond, forward)

	for _, sig := range []string{"Left", "Right", "Left", "Right"} {
		s.Submit(sig)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-ch:
		if got != engine.LaneRight {
			t.Errorf("Expected settled Right, got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Nothing forwarded after settling")
	}
	expectNone(t, ch, 60*time.Millisecond)
}

func TestStabilizerSkipsCurrentLane(t *testing.T) {
	forward, ch := collect()
	s := NewStabilizer(0, forward)

	s.Submit("Center")
	expectNone(t, ch, 10*time.Millisecond)

	s.BasketMoved(engine.LaneRight)
	s.Submit("Right")
	expectNone(t, ch, 10*time.Millisecond)

	// a session reset moves the basket back to Center
	s.BasketMoved(engine.LaneCenter)
	s.Submit("Right")
	if got := <-ch; got != engine.LaneRight {
		t.Errorf("Expected Right after reset, got %v", got)
	}
}

func TestStabilizerClose(t *testing.T) {
	forward, ch := collect()
	s := NewStabilizer(20*time.Millisecond, forward)

	s.Submit("Left")
	s.Close()
	s.Submit("Right")

	expectNone(t, ch, 60*time.Millisecond)
}

func TestStabilizerAliases(t *testing.T) {
	forward, ch := collect()
	s := NewStabilizer(0, forward)
	s.SetAliases(map[string]engine.Lane{"LEAN_L": engine.LaneLeft, "LEAN_R": engine.LaneRight})

	s.Submit("LEAN_L")
	if got := <-ch; got != engine.LaneLeft {
		t.Errorf("Expected Left from alias, got %v", got)
	}
	s.Submit("Right")
	if got := <-ch; got != engine.LaneRight {
		t.Errorf("Expected Right from lane name, got %v", got)
	}
	s.Submit("LEAN_UP")
	expectNone(t, ch, 10*time.Millisecond)
}
