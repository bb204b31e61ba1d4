package weapon

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"

	"pgregory.net/rapid"
)

func newTestWeapon(seed uint64) (*Model, *clock.Manual) {
	c := clock.NewManual(time.Unix(1000, 0))
	cfg := config.DefaultTuning().Weapon
	return New(cfg, rand.New(rand.NewPCG(seed, seed)), c), c
}

func TestNew_StartsAtRest(t *testing.T) {
	w, _ := newTestWeapon(1)
	st := w.State()
	if st.Recoil != 0 {
		t.Errorf("Recoil = %v, want 0", st.Recoil)
	}
	if st.Spread != w.cfg.SpreadBase {
		t.Errorf("Spread = %v, want %v", st.Spread, w.cfg.SpreadBase)
	}
	if st.Multiplier != 1 {
		t.Errorf("Multiplier = %v, want 1", st.Multiplier)
	}
	if !w.CanFire() {
		t.Error("fresh weapon should be able to fire")
	}
}

func TestFire_RespectsFireRate(t *testing.T) {
	w, c := newTestWeapon(1)

	if _, ok := w.Fire(); !ok {
		t.Fatal("first shot should fire")
	}
	recoil := w.Recoil()

	c.Advance(w.cfg.FireRate / 2)
	if w.CanFire() {
		t.Error("CanFire() should be false during cooldown")
	}
	if _, ok := w.Fire(); ok {
		t.Error("Fire() during cooldown should be ignored")
	}
	if w.Recoil() != recoil {
		t.Errorf("gated Fire() changed recoil: %v -> %v", recoil, w.Recoil())
	}

	c.Advance(w.cfg.FireRate / 2)
	if !w.CanFire() {
		t.Error("CanFire() should be true once cooldown elapsed")
	}
}

func TestFire_KickAndSpread(t *testing.T) {
	w, _ := newTestWeapon(1)
	w.Fire()

	if w.Recoil() != w.cfg.RecoilKick {
		t.Errorf("Recoil = %v, want %v", w.Recoil(), w.cfg.RecoilKick)
	}
	want := w.cfg.SpreadBase + w.cfg.SpreadPerShot
	if w.Spread() != want {
		t.Errorf("Spread = %v, want %v", w.Spread(), want)
	}
}

func TestFire_OffsetWithinSpread(t *testing.T) {
	w, c := newTestWeapon(7)
	for i := 0; i < 200; i++ {
		off, ok := w.Fire()
		if !ok {
			t.Fatalf("shot %d gated", i)
		}
		if r := math.Hypot(off.X, off.Y); r > w.Spread()+1e-9 {
			t.Fatalf("shot %d offset radius %v exceeds spread %v", i, r, w.Spread())
		}
		c.Advance(w.cfg.FireRate)
	}
}

func TestFire_SameSeedSameOffsets(t *testing.T) {
	a, ca := newTestWeapon(99)
	b, cb := newTestWeapon(99)
	for i := 0; i < 10; i++ {
		oa, _ := a.Fire()
		ob, _ := b.Fire()
		if oa != ob {
			t.Fatalf("shot %d: %+v != %+v", i, oa, ob)
		}
		ca.Advance(200 * time.Millisecond)
		cb.Advance(200 * time.Millisecond)
	}
}

func TestRapidFire_MultiplierGrowsAndResets(t *testing.T) {
	w, c := newTestWeapon(1)

	w.Fire()
	c.Advance(w.cfg.FireRate)
	w.Fire()
	if w.Multiplier() != 1 {
		t.Fatalf("Multiplier after 2 shots = %v, want 1", w.Multiplier())
	}

	prev := w.Multiplier()
	for i := 0; i < 5; i++ {
		c.Advance(w.cfg.FireRate)
		w.Fire()
		if w.Multiplier() <= prev {
			t.Fatalf("shot %d: multiplier %v did not increase from %v", i+3, w.Multiplier(), prev)
		}
		prev = w.Multiplier()
	}
	if w.ShotsInWindow() != 7 {
		t.Errorf("ShotsInWindow = %d, want 7", w.ShotsInWindow())
	}

	// Keep firing until the cap is reached.
	for i := 0; i < 20; i++ {
		c.Advance(w.cfg.FireRate)
		w.Fire()
	}
	if w.Multiplier() > w.cfg.MultiplierMax {
		t.Errorf("Multiplier = %v, exceeds max %v", w.Multiplier(), w.cfg.MultiplierMax)
	}

	c.Advance(w.cfg.RapidFireWindow)
	w.Update(w.cfg.RapidFireWindow.Seconds())
	if w.Multiplier() != 1 {
		t.Errorf("Multiplier after window expired = %v, want 1", w.Multiplier())
	}
	if w.ShotsInWindow() != 0 {
		t.Errorf("ShotsInWindow = %d, want 0", w.ShotsInWindow())
	}
}

func TestRapidFire_ThirdShotMultiplier(t *testing.T) {
	w, c := newTestWeapon(1)
	for i := 0; i < 3; i++ {
		w.Fire()
		c.Advance(w.cfg.FireRate)
	}
	want := 1 + w.cfg.MultiplierInc
	if w.Multiplier() != want {
		t.Errorf("Multiplier = %v, want %v", w.Multiplier(), want)
	}
}

func TestUpdate_Decays(t *testing.T) {
	w, c := newTestWeapon(1)
	for i := 0; i < 4; i++ {
		w.Fire()
		c.Advance(w.cfg.FireRate)
	}

	c.Advance(5 * time.Second)
	w.Update(5)

	if w.Recoil() != 0 {
		t.Errorf("Recoil = %v, want 0", w.Recoil())
	}
	if w.Spread() != w.cfg.SpreadBase {
		t.Errorf("Spread = %v, want %v", w.Spread(), w.cfg.SpreadBase)
	}
}

func TestUpdate_NegativeDTIgnored(t *testing.T) {
	w, _ := newTestWeapon(1)
	w.Fire()
	before := w.State()
	w.Update(-1)
	if w.State().Recoil != before.Recoil || w.State().Spread != before.Spread {
		t.Errorf("negative dt changed state: %+v -> %+v", before, w.State())
	}
}

func TestRecoilOffset(t *testing.T) {
	w, _ := newTestWeapon(1)
	w.Fire()
	for i := 0; i < 50; i++ {
		off := w.RecoilOffset()
		if off.Y != -w.Recoil() {
			t.Fatalf("Y = %v, want %v", off.Y, -w.Recoil())
		}
		if math.Abs(off.X) > w.Recoil()*0.2 {
			t.Fatalf("X jitter %v exceeds %v", off.X, w.Recoil()*0.2)
		}
	}
}

func TestReset(t *testing.T) {
	w, c := newTestWeapon(1)
	for i := 0; i < 5; i++ {
		w.Fire()
		c.Advance(w.cfg.FireRate)
	}
	w.Reset()

	if w.Recoil() != 0 || w.Spread() != w.cfg.SpreadBase || w.Multiplier() != 1 {
		t.Errorf("after Reset state = %+v", w.State())
	}
	if w.ShotsInWindow() != 0 {
		t.Errorf("ShotsInWindow = %d, want 0", w.ShotsInWindow())
	}
	if !w.CanFire() {
		t.Error("CanFire() should be true after Reset")
	}
}

func TestProperty_BoundsHoldForAnySequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, c := newTestWeapon(rapid.Uint64().Draw(rt, "seed"))
		steps := rapid.IntRange(1, 200).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			ms := rapid.IntRange(0, 500).Draw(rt, "ms")
			c.Advance(time.Duration(ms) * time.Millisecond)
			if rapid.Bool().Draw(rt, "fire") {
				w.Fire()
			} else {
				w.Update(float64(ms) / 1000)
			}

			st := w.State()
			if st.Recoil < 0 || st.Recoil > w.cfg.RecoilMax {
				rt.Fatalf("recoil %v out of [0, %v]", st.Recoil, w.cfg.RecoilMax)
			}
			if st.Spread < w.cfg.SpreadBase || st.Spread > w.cfg.SpreadMax {
				rt.Fatalf("spread %v out of [%v, %v]", st.Spread, w.cfg.SpreadBase, w.cfg.SpreadMax)
			}
			if st.Multiplier < 1 || st.Multiplier > w.cfg.MultiplierMax {
				rt.Fatalf("multiplier %v out of [1, %v]", st.Multiplier, w.cfg.MultiplierMax)
			}
		}
	})
}
