package resource

// attach registers r with owner, when there is one, and counts the reference.
// Every path that hands a resource to a caller goes through here exactly once.
func attach(owner Owner, r Resource) {
	if owner != nil {
		owner.AddResource(r)
	}
	r.AddRef()
}

// tryAttachExisting attaches owner to a cache hit. A nil r is a miss.
func tryAttachExisting(owner Owner, r Resource) bool {
	if r == nil {
		return false
	}
	attach(owner, r)
	return true
}

// detach drops one reference and returns the remaining count.
func detach(r Resource) int {
	return r.Release()
}
