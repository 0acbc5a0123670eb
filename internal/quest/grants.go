package quest

import "strings"

// Quest title constants for trigger and grant lookups
const (
	TitleWelcome  = "Welcome to the ENTROVERSE"
	TitleExplorer = "ENTROPIC EXPLORER"
)

// corruptedMarker tags the hidden quest family that always pays out the same
// rare item, matched as a case-insensitive title substring.
const corruptedMarker = "corrupted"

// grantSpec describes the bonus items a completed quest puts into the
// inventory on top of its catalog reward_item. A non-empty Label replaces the
// displayed reward name in the notification.
type grantSpec struct {
	Items []string
	Label string
}

// completionGrants maps quest titles to their bonus item grants
var completionGrants = map[string]grantSpec{
	TitleWelcome: {
		Items: []string{"Entro Cap"},
	},
	TitleExplorer: {
		Items: []string{"Void Visor", "Static Cloak"},
		Label: "Void Visor and Static Cloak",
	},
}

// corruptedGrant is the bonus payout for every quest in the corrupted family
var corruptedGrant = grantSpec{
	Items: []string{"Corrupted Crown"},
}

// isCorrupted reports whether the title belongs to the corrupted quest family
func isCorrupted(title string) bool {
	return strings.Contains(strings.ToLower(title), corruptedMarker)
}

// grantsForTitle resolves the item grant for a quest title, if any
func grantsForTitle(title string) (grantSpec, bool) {
	if spec, ok := completionGrants[title]; ok {
		return spec, true
	}
	if isCorrupted(title) {
		return corruptedGrant, true
	}
	return grantSpec{}, false
}
