package domain

// Requester carries the client context a save is attributed to. It is built
// by the transport layer (or left empty for system saves) and consumed by the
// versioned store when stamping revisions.
type Requester struct {
	// Member is the authenticated member, nil for anonymous/system saves.
	Member *Member

	IP        string
	UserAgent string

	// Message is the default changelog note, used when the caller does not
	// pass an explicit one to Save.
	Message string
}

// AuthorDocumentID returns the acting member's document id, or nil.
func (r *Requester) AuthorDocumentID() *uint64 {
	if r == nil || r.Member == nil || r.Member.DocumentID == 0 {
		return nil
	}
	id := r.Member.DocumentID
	return &id
}

// Permission is one action a member may take on a document.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

// HasPermission reports whether perm is present in perms.
func HasPermission(perms []Permission, perm Permission) bool {
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}
