package catalog

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)

// Minigame names
const (
	GameMath    = "math"
	GameReading = "reading"
)
