package jardiff

// PatchInfo describes a patch archive's instructions without applying them.
type PatchInfo struct {
	// Version is the control index version header.
	Version string

	// Removes lists names the applier drops from the old archive, in
	// control-index order.
	Removes []string

	// Moves lists the move commands in control-index order.
	Moves []Move

	// Payload lists the names stored whole in the patch, in patch-archive
	// order, excluding the control index itself.
	Payload []string
}

// InspectPatch reads the patch archive at path and decodes its control
// index. Command syntax is validated; move sources are not checked against
// any old archive, so a patch that inspects cleanly can still fail to
// apply.
func InspectPatch(path string) (*PatchInfo, error) {
	patch, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer patch.Close()

	idx, err := readIndex(patch)
	if err != nil {
		return nil, err
	}

	info := &PatchInfo{
		Version: idx.version,
		Removes: idx.removes,
		Moves:   idx.moves,
	}
	for e := range patch.Entries() {
		if e.Name == IndexName {
			continue
		}
		info.Payload = append(info.Payload, e.Name)
	}
	return info, nil
}
