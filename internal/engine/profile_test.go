package engine

import (
	"errors"
	"testing"
)

func TestProfileCatalog(t *testing.T) {
	cases := []struct {
		name       string
		depth      int
		randomness float64
	}{
		{"easy", 2, 0.30},
		{"medium", 3, 0.10},
		{"hard", 4, 0.05},
		{"expert", 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ProfileByName(tc.name)
			if err != nil {
				t.Fatalf("ProfileByName(%q) failed: %v", tc.name, err)
			}
			if p.MaxDepth != tc.depth {
				t.Errorf("MaxDepth = %d, want %d", p.MaxDepth, tc.depth)
			}
			if p.Randomness != tc.randomness {
				t.Errorf("Randomness = %v, want %v", p.Randomness, tc.randomness)
			}
		})
	}
}

func TestProfileByNameCaseInsensitive(t *testing.T) {
	for _, name := range []string{"Expert", "EXPERT", "  expert "} {
		if _, err := ProfileByName(name); err != nil {
			t.Errorf("ProfileByName(%q) failed: %v", name, err)
		}
	}
}

func TestProfileByNameUnknown(t *testing.T) {
	_, err := ProfileByName("grandmaster")
	if err == nil {
		t.Fatal("Expected an error for an unknown name")
	}
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Error %v does not wrap ErrInvalidConfiguration", err)
	}
}

func TestRegisterProfile(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := RegisterProfile(Profile{Name: "club", MaxDepth: 3, Randomness: 0.2}); err != nil {
			t.Fatalf("RegisterProfile failed: %v", err)
		}
		p, err := ProfileByName("club")
		if err != nil {
			t.Fatalf("Registered profile not found: %v", err)
		}
		if p.MaxDepth != 3 {
			t.Errorf("MaxDepth = %d, want 3", p.MaxDepth)
		}

		found := false
		for _, name := range ProfileNames() {
			if name == "club" {
				found = true
			}
		}
		if !found {
			t.Errorf("ProfileNames() = %v, missing club", ProfileNames())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, p := range []Profile{
			{Name: "", MaxDepth: 3, Randomness: 0},
			{Name: "shallow", MaxDepth: 0, Randomness: 0},
			{Name: "wild", MaxDepth: 3, Randomness: 1.5},
		} {
			err := RegisterProfile(p)
			if err == nil {
				t.Errorf("RegisterProfile(%+v) succeeded, want error", p)
				continue
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Error %v does not wrap ErrInvalidConfiguration", err)
			}
		}
	})
}
