package huntcheck

// Puzzle names, matching the server's metric labels.
const (
	PuzzleHello     = "hello"
	PuzzleCubeBits  = "cube_bits"
	PuzzleBadPacket = "bad_packet"
	PuzzleStrength  = "strength"
	PuzzleContest   = "contest"
	PuzzleElves     = "elves"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	maxHerdSize          = 12
	maxTextWords         = 40
	maxBodyPreview       = 200
)

// Request header and content types.
const (
	requestIDHeader = "X-Request-ID"
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)
