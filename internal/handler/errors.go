package handler

// User-facing error messages. Handlers and tests both reference these.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQuestID        = "Invalid quest id"
	ErrMsgInvalidAge            = "Invalid age parameter"
	ErrMsgResourceNotFound      = "Resource not found"
	ErrMsgCheckConnection       = "Could not save. Check your connection."

	ErrMsgLevelLocked     = "This quest is locked until a higher level"
	ErrMsgNotEnoughTokens = "Not enough tokens"
	ErrMsgAlreadyClaimed  = "The daily gift was already claimed today"
	ErrMsgNoBoxes         = "No box to open"
	ErrMsgEmptyQuestText  = "A quest needs a text"
	ErrMsgUnknownMinigame = "Unknown minigame mode"

	ErrMsgProfileNotFound = "Profile not found"
	ErrMsgQuestNotFound   = "Quest not found"
	ErrMsgItemNotFound    = "Item not found"
	ErrMsgInvalidPin      = "The PIN must be four digits"
	ErrMsgPinMismatch     = "Wrong PIN"
)

// Success messages
const (
	MsgProfileDeleted = "Profile deleted"
)

// Log messages
const (
	LogMsgEncodeFailed = "Failed to encode JSON response"
	LogMsgWriteFailed  = "Failed to write response buffer"
	LogMsgDecodeFailed = "Failed to decode request"
	LogMsgReadyzFailed = "Readiness check failed"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	MsgStoreDown      = "document store unreachable"
)
