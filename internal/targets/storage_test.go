package targets

import (
	"testing"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
)

func newTestStore() *Store {
	return NewStore(config.DefaultTuning(), clock.NewManual(time.Unix(0, 0)))
}

func TestNewStore(t *testing.T) {
	s := newTestStore()
	if s == nil {
		t.Fatal("NewStore() returned nil")
	}
	if len(s.GetList()) != 0 {
		t.Errorf("new store should be empty, got %d targets", len(s.GetList()))
	}
}

func TestStore_Add(t *testing.T) {
	s := newTestStore()
	target := s.Add(Spec{Kind: KindStatic, X: 0.1, Distance: 0.4})

	if target.ID != 1 {
		t.Errorf("first target ID = %d, want 1", target.ID)
	}
	if target.Distance != 0.4 {
		t.Errorf("Distance = %v, want 0.4", target.Distance)
	}
	if target.Hit || target.Falling {
		t.Error("new target should not be hit")
	}
	if s.Get(1) != target {
		t.Error("Get(1) should return the added target")
	}
}

func TestStore_Add_AutoIncrement(t *testing.T) {
	s := newTestStore()
	t1 := s.Add(Spec{})
	t2 := s.Add(Spec{})
	t3 := s.Add(Spec{})

	if t1.ID != 1 || t2.ID != 2 || t3.ID != 3 {
		t.Errorf("IDs = %d, %d, %d; want 1, 2, 3", t1.ID, t2.ID, t3.ID)
	}
}

func TestStore_Replace(t *testing.T) {
	s := newTestStore()
	old := s.Add(Spec{Kind: KindStatic, Distance: 0.2})

	fresh := s.Replace(old.ID, Spec{Kind: KindStatic, Distance: 0.7})

	if s.Get(old.ID) != nil {
		t.Error("replaced target should be gone")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if fresh.Distance != 0.7 {
		t.Errorf("fresh Distance = %v, want 0.7", fresh.Distance)
	}
}

func TestStore_GetList_Ordered(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 5; i++ {
		s.Add(Spec{})
	}
	s.Remove(3)

	list := s.GetList()
	if len(list) != 4 {
		t.Fatalf("GetList() returned %d targets, want 4", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("list not ordered by ID: %d before %d", list[i-1].ID, list[i].ID)
		}
	}
}

func TestStore_AllDown(t *testing.T) {
	s := newTestStore()
	if s.AllDown() {
		t.Error("empty store should not be all down")
	}
	a := s.Add(Spec{})
	b := s.Add(Spec{})

	a.OnHit(false)
	a.FallAngle = -90
	if s.AllDown() {
		t.Error("one standing target means not all down")
	}
	b.OnHit(false)
	b.FallAngle = -89
	if !s.AllDown() {
		t.Error("all targets past -88 should be all down")
	}
}

func TestStore_Views(t *testing.T) {
	s := newTestStore()
	s.Add(Spec{Kind: KindStatic})
	s.Add(Spec{Kind: KindPeek})

	views := s.Views()
	if len(views) != 2 {
		t.Fatalf("Views() = %d, want 2", len(views))
	}
	if views[1].Kind != KindPeek {
		t.Errorf("views[1].Kind = %q, want peek", views[1].Kind)
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore()
	s.Add(Spec{})
	s.Add(Spec{})

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("after Clear(), got %d targets, want 0", s.Len())
	}
	if newTarget := s.Add(Spec{}); newTarget.ID != 1 {
		t.Errorf("after Clear(), new ID = %d, want 1", newTarget.ID)
	}
}
