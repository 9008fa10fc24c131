package rbac

// Allows decides whether the granted set satisfies at least one of the
// required permissions. The check is pure: no I/O, no mutation.
//
// For each required permission, in priority order:
//  1. the global wildcard "*" grants everything,
//  2. an exact entry grants it,
//  3. a "category.*" entry grants every action in that category.
//
// An empty required list is vacuously allowed; deny is the default.
func Allows(granted Set, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	if granted.Contains(Wildcard) {
		return true
	}
	for _, r := range required {
		if granted.Contains(r) {
			return true
		}
		perm := ParsePermission(r)
		if perm.Category != "" && granted.Contains(perm.Category+"."+Wildcard) {
			return true
		}
	}
	return false
}
