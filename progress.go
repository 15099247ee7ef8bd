package jardiff

// ProgressEvent represents a progress update during patch creation or
// application.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Name is the entry currently being processed, if any.
	Name string

	// EntriesDone is the number of entries completed in the current stage.
	EntriesDone int

	// EntriesTotal is the total number of entries in the current stage.
	EntriesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for patch creation and application.
const (
	// StageIndex indicates archives are being opened and indexed.
	StageIndex ProgressStage = iota

	// StageClassify indicates entries are being matched against the old
	// archive and classified.
	StageClassify

	// StageWrite indicates output entries are being written.
	StageWrite
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageIndex:
		return "indexing"
	case StageClassify:
		return "classifying"
	case StageWrite:
		return "writing"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations. It is invoked
// synchronously on the calling goroutine; implementations should return
// quickly and must not retain the event.
type ProgressFunc func(ProgressEvent)
