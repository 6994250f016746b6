package constants

const (
	AppName            = "remindme"
	DefaultKeyringUser = "database-connection"
	DefaultStoragePath = "~/.config/remindme/remindme.json"
	Version            = "v0.2.0"

	// TimestampFormat is the timestamp format used for all persisted times
	// (remind_at, created_at, updated_at). RFC3339 with UTC normalization.
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// StampFormat is the format for store-assigned created_at/updated_at
	// values. Fixed-width nanosecond precision keeps records created within
	// the same second in insertion order under lexicographic (TEXT column)
	// comparison.
	StampFormat = "2006-01-02T15:04:05.000000000Z07:00"

	// SessionFileName is the name of the file holding the current session
	// token for the database-backed stores. It lives next to the store
	// (sqlite) or in the user config dir (postgres) and represents the
	// "currently authenticated principal" for this client context.
	SessionFileName = "session"

	// AccessTokenBytes is the number of random bytes in an access token
	// before hex encoding.
	AccessTokenBytes = 32
)
