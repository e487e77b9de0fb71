package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfiguration reports a malformed profile or agent setup.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Profile fixes the strength knobs for one difficulty level.
type Profile struct {
	// Name identifies the profile for lookup, matched case-insensitively.
	Name string `validate:"required"`
	// MaxDepth caps the iterative-deepening search in plies.
	MaxDepth int `validate:"gte=1,lte=64"`
	// Randomness is the probability the agent swaps the best move for a
	// near-equivalent one.
	Randomness float64 `validate:"gte=0,lte=1"`
}

var validate = validator.New()

var (
	profileMu    sync.RWMutex
	profiles     map[string]Profile
	profileOrder []string
)

func init() {
	profiles = make(map[string]Profile)
	for _, p := range []Profile{
		{Name: "easy", MaxDepth: 2, Randomness: 0.30},
		{Name: "medium", MaxDepth: 3, Randomness: 0.10},
		{Name: "hard", MaxDepth: 4, Randomness: 0.05},
		{Name: "expert", MaxDepth: 5, Randomness: 0},
	} {
		profiles[p.Name] = p
		profileOrder = append(profileOrder, p.Name)
	}
}

// ProfileByName returns the profile registered under the given name.
// Lookup ignores case. Unknown names report ErrInvalidConfiguration.
func ProfileByName(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	profileMu.RLock()
	p, ok := profiles[key]
	profileMu.RUnlock()

	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, name)
	}
	return p, nil
}

// RegisterProfile adds a profile to the registry or replaces the one
// sharing its name. Out-of-range fields report ErrInvalidConfiguration.
func RegisterProfile(p Profile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	key := strings.ToLower(p.Name)

	profileMu.Lock()
	defer profileMu.Unlock()
	if _, ok := profiles[key]; !ok {
		profileOrder = append(profileOrder, key)
	}
	profiles[key] = p
	return nil
}

// ProfileNames lists the registered profile names, built-ins first in
// ascending strength order.
func ProfileNames() []string {
	profileMu.RLock()
	defer profileMu.RUnlock()
	names := make([]string, len(profileOrder))
	copy(names, profileOrder)
	return names
}
