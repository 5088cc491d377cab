// Property-based tests for referral code minting and the milestone rule.
package service

import (
	"regexp"
	"testing"
	"time"

	"pgregory.net/rapid"
)

var codePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

// TestReferralCodeShapeProperty checks that minted codes are always 8
// uppercase hex characters and differ across timestamps for the same user.
func TestReferralCodeShapeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		userID := rapid.Int64Range(1, 1_000_000_000).Draw(t, "userID")
		now := time.Unix(0, rapid.Int64Range(1, 1<<62).Draw(t, "nanos"))

		code := NewReferralCode(userID, now)
		if !codePattern.MatchString(code) {
			t.Fatalf("malformed code %q", code)
		}

		other := NewReferralCode(userID, now.Add(time.Nanosecond))
		if code == other {
			t.Fatalf("codes collided across timestamps: %q", code)
		}
	})
}

// TestMilestoneRuleProperty checks the bonus boundary: granted exactly on
// positive multiples of three.
func TestMilestoneRuleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 1000).Draw(t, "count")

		expected := count > 0 && count%3 == 0
		if MilestoneReached(count) != expected {
			t.Fatalf("milestone(%d) = %v, expected %v", count, MilestoneReached(count), expected)
		}
	})
}

func TestMilestoneSequence(t *testing.T) {
	// Completions arriving one at a time: the bonus fires on 3, 6, 9 only.
	var granted []int
	for count := 1; count <= 10; count++ {
		if MilestoneReached(count) {
			granted = append(granted, count)
		}
	}
	if len(granted) != 3 || granted[0] != 3 || granted[1] != 6 || granted[2] != 9 {
		t.Fatalf("milestones granted at %v, expected [3 6 9]", granted)
	}
}
