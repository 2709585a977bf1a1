package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTrail_StationaryRecordsOnce(t *testing.T) {
	var tr Trail
	pos := mgl32.Vec3{10, 1.8, 10}
	for i := 0; i < 100; i++ {
		tr.Record(pos, 0.01)
	}
	if tr.Len() > 10 {
		t.Fatalf("throttle exceeded: %d entries in one second", tr.Len())
	}
	if tr.Len() != 1 {
		t.Fatalf("stationary player should leave exactly one breadcrumb, got %d", tr.Len())
	}
}

func TestTrail_MovingRespectsThrottleAndSpacing(t *testing.T) {
	var tr Trail
	for i := 0; i < 100; i++ {
		tr.Record(mgl32.Vec3{float32(i) * 0.5, 0, 0}, 0.01)
	}
	n := tr.Len()
	if n == 0 || n > 10 {
		t.Fatalf("expected 1..10 breadcrumbs, got %d", n)
	}
	pts := tr.Points()
	for i := 1; i < len(pts); i++ {
		if d := pts[i].Sub(pts[i-1]).Len(); d <= trailMinSpacing {
			t.Fatalf("breadcrumbs %d and %d only %.2f apart", i-1, i, d)
		}
	}
}

func TestTrail_SingleIntervalDoesNotRecord(t *testing.T) {
	var tr Trail
	tr.Record(mgl32.Vec3{1, 0, 1}, 0.1)
	if tr.Len() != 0 {
		t.Fatalf("a tick equal to the sample interval should not record, got %d", tr.Len())
	}
	tr.Record(mgl32.Vec3{1, 0, 1}, 0.05)
	if tr.Len() != 1 {
		t.Fatalf("expected a breadcrumb once the interval is exceeded, got %d", tr.Len())
	}
}

func TestTrail_FrontPopOrder(t *testing.T) {
	tr := Trail{points: []mgl32.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}}
	p, ok := tr.Front()
	if !ok || p.X() != 1 {
		t.Fatalf("expected oldest breadcrumb first, got %v", p)
	}
	tr.PopFront()
	p, _ = tr.Front()
	if p.X() != 2 {
		t.Fatalf("expected second breadcrumb after pop, got %v", p)
	}
	tr.PopFront()
	tr.PopFront()
	tr.PopFront() // popping an empty trail is a no-op
	if _, ok := tr.Front(); ok {
		t.Fatal("expected an empty trail")
	}
}

func TestTrail_TrimToRecent(t *testing.T) {
	tr := Trail{points: []mgl32.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}}
	tr.TrimToRecent(1)
	if tr.Len() != 1 {
		t.Fatalf("expected 1 breadcrumb, got %d", tr.Len())
	}
	if p, _ := tr.Front(); p.X() != 4 {
		t.Fatalf("expected the newest breadcrumb to survive, got %v", p)
	}
	tr.TrimToRecent(5)
	if tr.Len() != 1 {
		t.Fatal("trimming to more than the length should not change the trail")
	}
}

func TestTrail_ClearResetsTimer(t *testing.T) {
	var tr Trail
	tr.Record(mgl32.Vec3{}, 0.09)
	tr.Clear()
	tr.Record(mgl32.Vec3{}, 0.05)
	if tr.Len() != 0 {
		t.Fatal("Clear should reset the sample timer")
	}
}

func TestTrail_PointsIsACopy(t *testing.T) {
	tr := Trail{points: []mgl32.Vec3{{1, 0, 0}}}
	pts := tr.Points()
	pts[0] = mgl32.Vec3{9, 9, 9}
	if p, _ := tr.Front(); p.X() != 1 {
		t.Fatal("Points must not alias the trail storage")
	}
}
