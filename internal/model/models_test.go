package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseBadges(t *testing.T) {
	assert.Nil(t, ParseBadges(""))
	assert.Equal(t, []string{"phishing_hero"}, ParseBadges("phishing_hero"))
	assert.Equal(t, []string{"a", "b"}, ParseBadges("a, b"))
	assert.Equal(t, []string{"a"}, ParseBadges(",a,,"))
}

func TestAddBadgeUnion(t *testing.T) {
	s := AddBadge("", "phishing_hero")
	assert.Equal(t, "phishing_hero", s)

	s = AddBadge(s, "call_guard")
	assert.Equal(t, "call_guard,phishing_hero", s)

	// Adding a held badge changes nothing.
	assert.Equal(t, s, AddBadge(s, "phishing_hero"))

	// Empty badge is a no-op.
	assert.Equal(t, s, AddBadge(s, ""))
}

// TestAddBadgeSetSemanticsProperty checks that the stored form behaves as a
// set: order of insertion never matters and re-adding is idempotent.
func TestAddBadgeSetSemanticsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		badges := rapid.SliceOfN(rapid.StringMatching(`[a-z_]{1,12}`), 1, 8).Draw(t, "badges")

		forward := ""
		for _, b := range badges {
			forward = AddBadge(forward, b)
		}
		backward := ""
		for i := len(badges) - 1; i >= 0; i-- {
			backward = AddBadge(backward, badges[i])
		}

		if forward != backward {
			t.Fatalf("insertion order leaked into stored form: %q vs %q", forward, backward)
		}
		for _, b := range badges {
			if AddBadge(forward, b) != forward {
				t.Fatalf("re-adding %q changed the set %q", b, forward)
			}
		}

		parsed := ParseBadges(forward)
		if !strings.Contains(","+forward+",", ","+badges[0]+",") {
			t.Fatalf("badge %q missing from %q", badges[0], forward)
		}
		for i := 1; i < len(parsed); i++ {
			if parsed[i-1] >= parsed[i] {
				t.Fatalf("stored form not sorted/deduped: %v", parsed)
			}
		}
	})
}

func TestUserHasBadge(t *testing.T) {
	u := &User{ScenarioBadges: "call_guard,phishing_hero"}

	assert.True(t, u.HasBadge("phishing_hero"))
	assert.True(t, u.HasBadge("call_guard"))
	assert.False(t, u.HasBadge("deal_detective"))
	assert.Len(t, u.Badges(), 2)
}

func TestPeriodValid(t *testing.T) {
	for _, p := range Periods() {
		assert.True(t, p.Valid())
	}
	assert.False(t, Period("daily").Valid())
	assert.False(t, Period("").Valid())
}
