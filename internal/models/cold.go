package models

import (
	"encoding/json"
	"fmt"
)

// ColdSchemaVersion is the current cold-blob schema version. Version 0 is
// the untagged legacy format produced before versioning was introduced.
const ColdSchemaVersion = 1

// ColdData holds every profile field that the remote store keeps inside a
// single opaque JSON column instead of typed columns.
type ColdData struct {
	SchemaVersion    int    `json:"schemaVersion"`
	RegistrationDate string `json:"registrationDate,omitempty"`

	CompletedLessonIDs []string        `json:"completedLessonIds"`
	SubmittedHomeworks []string        `json:"submittedHomeworks"`
	ChatHistory        []ChatMessage   `json:"chatHistory"`
	Notebook           []NotebookEntry `json:"notebook"`

	Theme         AppTheme             `json:"theme"`
	Notifications NotificationSettings `json:"notifications"`

	AvatarURL           string `json:"avatarUrl,omitempty"`
	OriginalPhotoBase64 string `json:"originalPhotoBase64,omitempty"`
	ArmorStyle          string `json:"armorStyle,omitempty"`
	BackgroundStyle     string `json:"backgroundStyle,omitempty"`

	Instagram  string       `json:"instagram,omitempty"`
	AboutMe    string       `json:"aboutMe,omitempty"`
	InviteLink string       `json:"inviteLink,omitempty"`
	Dossier    *UserDossier `json:"dossier,omitempty"`
}

// EncodeColdData serializes the cold blob, stamping the current schema
// version.
func EncodeColdData(c ColdData) ([]byte, error) {
	c.SchemaVersion = ColdSchemaVersion
	return json.Marshal(c)
}

// DecodeColdData deserializes a cold blob of any known schema version and
// migrates it to the current one. Unknown future versions are rejected so a
// newer blob is not silently truncated.
func DecodeColdData(raw []byte) (ColdData, error) {
	var c ColdData
	if len(raw) == 0 {
		return MigrateColdData(c), nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return ColdData{}, fmt.Errorf("cold blob decode: %w", err)
	}
	if c.SchemaVersion > ColdSchemaVersion {
		return ColdData{}, fmt.Errorf("cold blob schema version %d is newer than supported %d", c.SchemaVersion, ColdSchemaVersion)
	}
	return MigrateColdData(c), nil
}

// OverlayColdData lays over's serialized fields on top of base, at key
// granularity. Optional fields absent from over's payload keep base's
// values; fields over always carries (collections, theme, notifications,
// schema version) replace base's wholesale.
func OverlayColdData(base, over ColdData) ColdData {
	raw, err := json.Marshal(over)
	if err != nil {
		return over
	}
	merged := base
	if err := json.Unmarshal(raw, &merged); err != nil {
		return over
	}
	return merged
}

// MigrateColdData upgrades a blob parsed from an older schema. Version 0 blobs
// predate the version tag: collections may be nil and theme unset.
func MigrateColdData(c ColdData) ColdData {
	if c.SchemaVersion == 0 {
		if c.Theme == "" {
			c.Theme = ThemeLight
		}
		c.SchemaVersion = ColdSchemaVersion
	}
	if c.CompletedLessonIDs == nil {
		c.CompletedLessonIDs = []string{}
	}
	if c.SubmittedHomeworks == nil {
		c.SubmittedHomeworks = []string{}
	}
	if c.ChatHistory == nil {
		c.ChatHistory = []ChatMessage{}
	}
	if c.Notebook == nil {
		c.Notebook = []NotebookEntry{}
	}
	return c
}
