package memory

// ChangedPages lists the pages that differ between two snapshots of the same
// store: pages that were added, removed, or rewritten. Untouched pages share
// their pointer across snapshots, so pointer comparison is exact.
func ChangedPages(before, after *Snapshot) []string {
	var changed []string
	for _, p := range after.Pages {
		if before.Page(p.Id) != p {
			changed = append(changed, p.Id)
		}
	}
	for _, p := range before.Pages {
		if after.Page(p.Id) == nil {
			changed = append(changed, p.Id)
		}
	}
	return changed
}
