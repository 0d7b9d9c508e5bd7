// AngelaMos | 2026
// policy.go

package tip

import (
	"github.com/carterperez-dev/tipster-platform/internal/user"
)

// CanMutate is the single owner-or-admin rule applied before every tip
// update and delete. Existence is checked separately and first, so a
// missing tip surfaces as 404 rather than leaking through a 403.
func CanMutate(actorID, actorRole, ownerID string) bool {
	return actorRole == user.RoleAdmin || actorID == ownerID
}

// ClampRating forces any rating into [1,5]. There is no error path;
// out-of-range input is normalized, not rejected.
func ClampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
