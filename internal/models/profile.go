// Package models defines the canonical user profile entity and its
// supporting types. ProfileRecord splits into hot fields (mirrored as typed
// columns in the remote store) and ColdData (an opaque, versioned JSON blob
// on the remote side).
package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleCurator UserRole = "CURATOR"
	RoleAdmin   UserRole = "ADMIN"
)

type AppTheme string

const (
	ThemeLight AppTheme = "LIGHT"
	ThemeDark  AppTheme = "DARK"
)

// XPPerLevel is the amount of experience points per level step.
const XPPerLevel = 1000

type NotebookEntryType string

const (
	NotebookHabit NotebookEntryType = "HABIT"
	NotebookGoal  NotebookEntryType = "GOAL"
	NotebookIdea  NotebookEntryType = "IDEA"
	NotebookNote  NotebookEntryType = "NOTE"
)

type NotebookEntry struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	IsChecked bool              `json:"isChecked"`
	Type      NotebookEntryType `json:"type"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "model"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage builds a timestamped chat message with a fresh id.
func NewChatMessage(role, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

type NotificationSettings struct {
	PushEnabled       bool `json:"pushEnabled"`
	TelegramSync      bool `json:"telegramSync"`
	DeadlineReminders bool `json:"deadlineReminders"`
	ChatNotifications bool `json:"chatNotifications"`
}

// UserDossier holds the onboarding questionnaire answers. All fields are
// free-form and optional.
type UserDossier struct {
	Height             string `json:"height,omitempty"`
	Weight             string `json:"weight,omitempty"`
	BirthDate          string `json:"birthDate,omitempty"`
	Location           string `json:"location,omitempty"`
	LivingSituation    string `json:"livingSituation,omitempty"`
	WorkExperience     string `json:"workExperience,omitempty"`
	IncomeGoal         string `json:"incomeGoal,omitempty"`
	CourseExpectations string `json:"courseExpectations,omitempty"`
	CourseGoals        string `json:"courseGoals,omitempty"`
	Motivation         string `json:"motivation,omitempty"`
}

// ProfileRecord is the canonical user progress entity.
//
// TelegramID, when present, is the unique remote key: at most one remote row
// exists per TelegramID. A record without a TelegramID is local-only and is
// never reconciled remotely. ColdData is embedded so the serialized record
// stays a single flat JSON object.
type ProfileRecord struct {
	TelegramID       string `json:"telegramId,omitempty"`
	TelegramUsername string `json:"telegramUsername,omitempty"`

	Name            string   `json:"name"`
	Role            UserRole `json:"role"`
	XP              int64    `json:"xp"`
	Level           int64    `json:"level"`
	IsAuthenticated bool     `json:"isAuthenticated"`

	ColdData
}

// LevelForXP derives the level from experience points. Level is never stored
// independently of this derivation.
func LevelForXP(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// NewProfile returns a fresh default record: zero XP, level 1, student role,
// empty collections.
func NewProfile(name string) *ProfileRecord {
	return &ProfileRecord{
		Name:  name,
		Role:  RoleStudent,
		XP:    0,
		Level: 1,
		ColdData: ColdData{
			SchemaVersion:      ColdSchemaVersion,
			RegistrationDate:   time.Now().UTC().Format(time.RFC3339),
			CompletedLessonIDs: []string{},
			SubmittedHomeworks: []string{},
			ChatHistory:        []ChatMessage{},
			Notebook:           []NotebookEntry{},
			Theme:              ThemeLight,
		},
	}
}

// AddXP increases experience points by delta (which may be negative) and
// recomputes the level. XP never goes below zero.
func (p *ProfileRecord) AddXP(delta int64) {
	p.XP += delta
	if p.XP < 0 {
		p.XP = 0
	}
	p.Level = LevelForXP(p.XP)
}

// CompleteLesson records a completed lesson and awards its XP. Completing the
// same lesson twice is a no-op.
func (p *ProfileRecord) CompleteLesson(lessonID string, xpReward int64) bool {
	for _, id := range p.CompletedLessonIDs {
		if id == lessonID {
			return false
		}
	}
	p.CompletedLessonIDs = append(p.CompletedLessonIDs, lessonID)
	p.AddXP(xpReward)
	return true
}

// SubmitHomework records a homework submission id.
func (p *ProfileRecord) SubmitHomework(homeworkID string) {
	for _, id := range p.SubmittedHomeworks {
		if id == homeworkID {
			return
		}
	}
	p.SubmittedHomeworks = append(p.SubmittedHomeworks, homeworkID)
}

// Clone returns a deep-enough copy for merge operations: slices are copied so
// mutating the clone does not alias the original.
func (p *ProfileRecord) Clone() *ProfileRecord {
	c := *p
	c.CompletedLessonIDs = append([]string(nil), p.CompletedLessonIDs...)
	c.SubmittedHomeworks = append([]string(nil), p.SubmittedHomeworks...)
	c.ChatHistory = append([]ChatMessage(nil), p.ChatHistory...)
	c.Notebook = append([]NotebookEntry(nil), p.Notebook...)
	if p.Dossier != nil {
		d := *p.Dossier
		c.Dossier = &d
	}
	return &c
}
