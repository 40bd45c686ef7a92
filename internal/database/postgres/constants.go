package postgres

// Error Messages - Document Operations
const (
	ErrMsgFailedToGetDocument    = "failed to get document"
	ErrMsgFailedToPutDocument    = "failed to put document"
	ErrMsgFailedToDeleteDocument = "failed to delete document"
	ErrMsgFailedToListChanges    = "failed to list document changes"
)
