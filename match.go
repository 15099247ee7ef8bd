package jardiff

// bestMatch finds the old-archive entry whose content matches e, preferring
// the entry sharing e's name. It returns the matched old name, or ok=false
// when no old entry holds identical content.
//
// The same-name preference keeps unchanged entries from being reported as
// renames when their content also exists under other names. Checksum
// equality alone is never enough; every candidate is confirmed by a full
// content comparison, so colliding checksums cannot corrupt a patch.
func (d *differ) bestMatch(oldArc *Archive, e *Entry) (string, bool, error) {
	if cand, ok := oldArc.Lookup(e.Name); ok && cand.Checksum == e.Checksum {
		same, err := d.sameContent(cand, e)
		if err != nil {
			return "", false, err
		}
		if same {
			return cand.Name, true, nil
		}
	}

	// Fall back to the first entry in native order with identical content.
	for _, cand := range oldArc.ChecksumMatches(e.Checksum) {
		same, err := d.sameContent(cand, e)
		if err != nil {
			return "", false, err
		}
		if same {
			return cand.Name, true, nil
		}
	}
	return "", false, nil
}
