// Package jardiff creates and applies content-aware patches for zip and
// jar archives.
//
// A patch is itself a zip archive. One control index entry named
// [IndexName] carries remove and move commands; every other entry is the
// raw content of a new or modified name, copied whole from the new archive.
// Unchanged entries are never retransmitted, and entries whose content
// merely moved to another name become move commands. The index follows the
// JNLP jardiff format, so patches interoperate with existing appliers.
//
// # Quick Start
//
// Create a patch from two versions of an archive:
//
//	out, err := os.Create("app-1.0-to-1.1.jardiff")
//	if err != nil {
//	    return err
//	}
//	defer out.Close()
//	err = jardiff.CreatePatch("app-1.0.jar", "app-1.1.jar", out)
//
// Reconstruct the new archive from the old one plus the patch:
//
//	rebuilt, err := os.Create("app-1.1.jar")
//	if err != nil {
//	    return err
//	}
//	defer rebuilt.Close()
//	err = jardiff.ApplyPatch("app-1.0.jar", "app-1.0-to-1.1.jardiff", rebuilt)
//
// # Minimal mode
//
// By default a name is moved at most once; when several new entries share
// one source's content, the extras are stored whole, because 1.0-era
// appliers reject duplicate-source moves. [CreateWithMinimal] trades that
// compatibility for the smallest possible edit script. [ApplyPatch] accepts
// both forms.
//
// # Format quirks
//
// The control index escapes spaces in names with a backslash but never
// escapes backslash itself, so a name ending in a backslash is ambiguous on
// the wire. Archives holding several entries under one name are indexed
// last occurrence wins. Both behaviors match the original format and are
// kept for compatibility.
package jardiff
