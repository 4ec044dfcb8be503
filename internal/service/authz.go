package service

// CanUpdatePost: only the owner may update; admins get no override.
func CanUpdatePost(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// CanDeletePost: the owner or any admin may delete.
func CanDeletePost(actorID, ownerID string, isAdmin bool) bool {
	return isAdmin || (actorID != "" && actorID == ownerID)
}
