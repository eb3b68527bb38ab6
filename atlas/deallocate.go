package atlas

// Deallocate releases an allocated rectangle and coalesces free space
// upward: while the released leaf's sibling is also a Free leaf, the pair
// collapses into their parent, repeating at each level. Merged rectangles
// are always the exact rectangle of an earlier split, so the guillotine
// structure is preserved.
//
// Fails with ErrInvalidHandle if the id is stale or never allocated; the
// atlas is unchanged in that case.
func (a *Atlas) Deallocate(id AllocId) error {
	cur, n, err := a.allocatedNode(id)
	if err != nil {
		return err
	}
	a.stats.DeallocCalls++
	tracef("deallocate %v at %+v", id, n.rect)

	n.kind = KindFree
	a.addFreeRect(cur)

	for {
		parent := a.mustNode(cur).parent
		if parent.IsNone() {
			break
		}
		sibling := a.siblingOf(parent, cur)
		if a.mustNode(sibling).kind != KindFree {
			break
		}

		a.removeFreeRect(cur)
		a.removeFreeRect(sibling)
		a.mergeContainer(parent)
		a.addFreeRect(parent)
		cur = parent
	}

	if debugChecks {
		if err := a.validate(); err != nil {
			panic(err)
		}
	}
	return nil
}
