// AngelaMos | 2026
// policy_test.go

package tip

import (
	"testing"
)

func TestClampRating(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}

	for _, tc := range cases {
		if got := ClampRating(tc.in); got != tc.want {
			t.Fatalf("ClampRating(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCanMutate_Owner(t *testing.T) {
	if !CanMutate("u1", "TIPSTER", "u1") {
		t.Fatal("owner should be allowed to mutate")
	}
}

func TestCanMutate_Admin(t *testing.T) {
	if !CanMutate("admin-1", "ADMIN", "u1") {
		t.Fatal("admin should be allowed to mutate any tip")
	}
}

func TestCanMutate_Stranger(t *testing.T) {
	if CanMutate("u2", "TIPSTER", "u1") {
		t.Fatal("non-owner non-admin should not be allowed to mutate")
	}
	if CanMutate("u2", "USER", "u1") {
		t.Fatal("plain user should not be allowed to mutate")
	}
}
