package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeColdDataStampsVersion(t *testing.T) {
	blob, err := EncodeColdData(ColdData{Theme: ThemeDark})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(blob, &m))
	assert.Equal(t, float64(ColdSchemaVersion), m["schemaVersion"])
}

func TestDecodeColdDataEmptyBlob(t *testing.T) {
	c, err := DecodeColdData(nil)
	require.NoError(t, err)

	assert.Equal(t, ColdSchemaVersion, c.SchemaVersion)
	assert.Equal(t, ThemeLight, c.Theme)
	assert.NotNil(t, c.CompletedLessonIDs)
	assert.NotNil(t, c.Notebook)
}

func TestDecodeColdDataLegacyBlob(t *testing.T) {
	// A version-0 blob: no schemaVersion tag, no theme, nil collections.
	raw := []byte(`{"completedLessonIds":["l1"],"aboutMe":"hi"}`)

	c, err := DecodeColdData(raw)
	require.NoError(t, err)

	assert.Equal(t, ColdSchemaVersion, c.SchemaVersion)
	assert.Equal(t, ThemeLight, c.Theme)
	assert.Equal(t, []string{"l1"}, c.CompletedLessonIDs)
	assert.Equal(t, "hi", c.AboutMe)
	assert.NotNil(t, c.SubmittedHomeworks)
	assert.NotNil(t, c.ChatHistory)
}

func TestDecodeColdDataRejectsNewerVersion(t *testing.T) {
	raw := []byte(`{"schemaVersion":99}`)

	_, err := DecodeColdData(raw)
	assert.Error(t, err)
}

func TestOverlayColdData(t *testing.T) {
	base := ColdData{
		CompletedLessonIDs: []string{"base-1"},
		AboutMe:            "base about",
		Dossier:            &UserDossier{Location: "Riga"},
	}
	over := ColdData{
		CompletedLessonIDs: []string{"over-1", "over-2"},
		Theme:              ThemeDark,
	}

	merged := OverlayColdData(base, over)

	// Always-serialized fields come from over, even when shorter.
	assert.Equal(t, []string{"over-1", "over-2"}, merged.CompletedLessonIDs)
	assert.Equal(t, ThemeDark, merged.Theme)

	// Optional fields absent from over keep base's values.
	assert.Equal(t, "base about", merged.AboutMe)
	require.NotNil(t, merged.Dossier)
	assert.Equal(t, "Riga", merged.Dossier.Location)
}

func TestOverlayColdDataOverFieldWins(t *testing.T) {
	base := ColdData{AboutMe: "base"}
	over := ColdData{AboutMe: "over"}

	assert.Equal(t, "over", OverlayColdData(base, over).AboutMe)
}

func TestDecodeColdDataRejectsGarbage(t *testing.T) {
	_, err := DecodeColdData([]byte(`{not json`))
	assert.Error(t, err)
}

func TestProfileRecordSerializesFlat(t *testing.T) {
	p := NewProfile("Ann")
	p.AvatarURL = "https://example.com/a.png"

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	// Cold fields appear at the top level of the object, not nested.
	assert.Contains(t, m, "avatarUrl")
	assert.Contains(t, m, "completedLessonIds")
	assert.Contains(t, m, "name")
	assert.NotContains(t, m, "ColdData")
}
