package msgcat

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Pipeline completed successfully (or usage hint printed)
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (unknown flags, invalid flag values)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitInputError     = 11 // Input file missing or malformed
	ExitTransformError = 12 // Category decoding failed
	ExitStoreError     = 13 // Destination store could not be written
)

const (
	// DefaultTableName is the table written to the destination store.
	DefaultTableName = "disaster_messages"

	// DefaultIDColumn is the join key shared by both input files.
	DefaultIDColumn = "id"

	// DefaultCategoryColumn holds the encoded category string in the categories file.
	DefaultCategoryColumn = "categories"

	// DefaultItemSeparator separates name-value tokens inside an encoded category string.
	DefaultItemSeparator = ";"

	// DefaultValueSeparator separates a category name from its value.
	DefaultValueSeparator = "-"

	// DefaultBatchSize is the number of rows inserted per prepared batch.
	DefaultBatchSize = 500

	// JoinSuffixLeft and JoinSuffixRight disambiguate non-key columns present
	// in both join inputs.
	JoinSuffixLeft  = "_x"
	JoinSuffixRight = "_y"
)
