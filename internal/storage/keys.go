package storage

// Well-known store keys. The sync subsystem owns KeyProgress and
// KeyAllUsers; the rest are content caches owned by the UI layer and are
// safe to drop under storage pressure.
const (
	KeyProgress      = "progress"
	KeyAllUsers      = "allUsers"
	KeyAppConfig     = "appConfig"
	KeyCourseModules = "courseModules"
	KeyMaterials     = "materials"
	KeyStreams       = "streams"
	KeyEvents        = "events"
	KeyScenarios     = "scenarios"

	// Local (non-Telegram) auth metadata. Never synced remotely.
	KeyAuthUsername = "authUsername"
	KeyAuthSalt     = "authSalt"
	KeyAuthVerifier = "authVerifier"
)
