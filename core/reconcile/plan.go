package reconcile

// index is a key-indexed view of a record set that remembers the order in
// which keys were first seen, so plans come out in a deterministic order.
type index[T any] struct {
	items map[string]T
	order []string
}

func (ix *index[T]) put(key string, item T) {
	if _, exists := ix.items[key]; !exists {
		ix.order = append(ix.order, key)
	}
	// Last write wins on key collision.
	ix.items[key] = item
}

func newIndex[T any](size int) *index[T] {
	return &index[T]{items: make(map[string]T, size)}
}

func indexIdentities(identities []Identity) *index[Identity] {
	ix := newIndex[Identity](len(identities))
	for _, id := range identities {
		key := id.Key()
		if key == "" {
			continue
		}
		ix.put(key, id)
	}
	return ix
}

func indexContacts(contacts []Contact) *index[Contact] {
	ix := newIndex[Contact](len(contacts))
	for _, c := range contacts {
		key := c.Key()
		if key == "" {
			continue
		}
		ix.put(key, c)
	}
	return ix
}

// IndexIdentities returns the identities keyed by lookup key.
// When two identities share a key, the later one replaces the earlier one.
// Identities with an empty key are skipped.
func IndexIdentities(identities []Identity) map[string]Identity {
	return indexIdentities(identities).items
}

// IndexContacts returns the contacts keyed by lookup key.
// When two contacts share a key, the later one replaces the earlier one.
// Contacts with an empty key are skipped.
func IndexContacts(contacts []Contact) map[string]Contact {
	return indexContacts(contacts).items
}

// Differs reports whether any of the synced attributes differ between a
// source identity and the fields of a destination contact. The comparison is
// exact and case-sensitive; SecondaryEmail is not compared.
func Differs(src, dst Identity) bool {
	return src.GivenName != dst.GivenName ||
		src.FamilyName != dst.FamilyName ||
		src.DisplayName != dst.DisplayName ||
		src.PrimaryEmail != dst.PrimaryEmail
}

// BuildPlan computes the operations that make the destination mirror the
// source. It performs no I/O.
//
// Creates and updates follow the order in which source keys were first seen;
// deletes follow the destination order. Updates carry the destination ID and
// ETag with the full source field set.
func BuildPlan(source []Identity, destination []Contact, opts Options) *Plan {
	src := indexIdentities(source)
	dst := indexContacts(destination)

	plan := &Plan{
		ToCreate: []Identity{},
		ToUpdate: []Update{},
		ToDelete: []Delete{},
	}

	for _, key := range src.order {
		want := src.items[key]
		existing, ok := dst.items[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, want)
			continue
		}
		if Differs(want, existing.Fields) {
			plan.ToUpdate = append(plan.ToUpdate, Update{
				ID:     existing.ID,
				ETag:   existing.ETag,
				Fields: want,
			})
		}
	}

	if !opts.DeleteRemoved {
		return plan
	}

	for _, key := range dst.order {
		if _, ok := src.items[key]; ok {
			continue
		}
		c := dst.items[key]
		plan.ToDelete = append(plan.ToDelete, Delete{
			ID:   c.ID,
			ETag: c.ETag,
			Key:  key,
		})
	}

	return plan
}
