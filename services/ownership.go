package services

// RequireOwner guards instructor-privileged reads and writes. On failure the
// caller must behave exactly as if the resource did not exist, so non-owners
// cannot probe for course ids. Ownership and visibility are independent
// checks: the owner path uses this guard, the public path uses the
// visibility filter, and they are never cross-applied.
func RequireOwner(ownerID, requesterID uint) error {
	if requesterID == 0 || ownerID != requesterID {
		return ErrNotOwner
	}
	return nil
}
