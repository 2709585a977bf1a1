package game

import (
	"strings"
	"testing"
)

func TestSimLog_QueryHelpers(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "hunter", "sight", "los_acquired", "", 12)
	sl.Add(4, "hunter", "jump", "jump_start", "d=4.8", 4.8)
	sl.Add(5, "hunter", "sight", "los_lost", "trail=3", 9)
	sl.Add(9, "hunter", "sight", "los_acquired", "", 7)
	sl.AddVerbose(9, "hunter", "move", "pose", "pos=(0,0,0)", 0)

	if sl.Len() != 4 {
		t.Fatalf("verbose entry should be dropped, got %d entries", sl.Len())
	}
	if n := sl.CountCategory("sight", ""); n != 3 {
		t.Fatalf("expected 3 sight entries, got %d", n)
	}
	last, ok := sl.LastOf("sight", "los_acquired")
	if !ok || last.Tick != 9 {
		t.Fatalf("expected the last acquisition at tick 9, got %+v", last)
	}
	if _, ok := sl.LastOf("session", "won"); ok {
		t.Fatal("expected no win entry")
	}
	if !sl.HasEntry("sight", "los_lost", "trail=3") {
		t.Fatal("expected the los_lost entry with its trail length")
	}
	if sl.HasEntry("jump", "", "d=9") {
		t.Fatal("value substring should be matched")
	}
	if got := sl.FilterTickRange(4, 5); len(got) != 2 {
		t.Fatalf("expected 2 entries in [4,5], got %d", len(got))
	}
	if got := sl.Since(3); len(got) != 1 || got[0].Tick != 9 {
		t.Fatalf("expected only the last entry, got %+v", got)
	}
	if sl.Since(10) != nil {
		t.Fatal("expected nil past the end")
	}
}

func TestSimLog_VerboseAndFormat(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(3, "hunter", "move", "pose", "speed=50.0", 50)
	if sl.Len() != 1 {
		t.Fatalf("verbose log should keep pose entries, got %d", sl.Len())
	}
	line := sl.Format()
	if !strings.HasPrefix(line, "[T=0003] hunter") || !strings.Contains(line, "speed=50.0") {
		t.Fatalf("unexpected format %q", line)
	}
	if sl.FormatRange(4, 10) != "" {
		t.Fatal("expected an empty range")
	}
}
