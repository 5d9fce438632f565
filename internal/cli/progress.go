package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/hostenv"
	"github.com/salespro-app/salespro/internal/models"
)

// Profile prints the current progress record and pending-push status.
func (a *App) Profile(ctx context.Context) error {
	p := a.profile
	_, _ = printlnFn("Name:     ", p.Name)
	_, _ = printlnFn("Role:     ", string(p.Role))
	_, _ = printlnFn("XP:       ", p.XP)
	_, _ = printlnFn("Level:    ", p.Level)
	_, _ = printlnFn("Lessons:  ", len(p.CompletedLessonIDs))
	_, _ = printlnFn("Homeworks:", len(p.SubmittedHomeworks))
	_, _ = printlnFn("Theme:    ", string(p.Theme))
	if p.TelegramID != "" {
		_, _ = printlnFn("Telegram: ", p.TelegramID)
	}
	if n := a.outbox.PendingCount(ctx); n > 0 {
		_, _ = printlnFn("Pending remote pushes:", n)
	}
	return nil
}

// Lesson marks a lesson as completed and awards its XP. Completing the same
// lesson again awards nothing.
func (a *App) Lesson(ctx context.Context) error {
	lessonID, err := GetSimpleText(a.reader, "Lesson id", os.Stdout)
	if err != nil {
		return err
	}
	rewardText, err := GetSimpleText(a.reader, "XP reward", os.Stdout)
	if err != nil {
		return err
	}
	reward, err := strconv.ParseInt(rewardText, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid xp reward: %w", err)
	}

	if !a.profile.CompleteLesson(lessonID, reward) {
		_, _ = printlnFn("Lesson already completed.")
		return nil
	}
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Lesson completed. XP:", a.profile.XP, "Level:", a.profile.Level)
	return nil
}

// Homework submits homework content to the AI oracle for grading. A passed
// grade records the submission and awards XP; an unavailable oracle degrades
// to a message, never an error.
func (a *App) Homework(ctx context.Context) error {
	homeworkID, err := GetSimpleText(a.reader, "Homework id", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetSimpleText(a.reader, "Your answer", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.oracle.GradeSubmission(ctx, content, "text", "")
	if err != nil {
		if errors.Is(err, common.ErrAIUnavailable) {
			_, _ = printlnFn("AI coach is unavailable, try again later.")
			return nil
		}
		return err
	}

	_, _ = printlnFn("Feedback:", result.Feedback)
	if !result.Passed {
		return nil
	}
	a.profile.SubmitHomework(homeworkID)
	a.profile.AddXP(homeworkXPReward)
	a.syncer.Save(ctx, a.profile)
	a.host.Haptic(hostenv.HapticSuccess)
	_, _ = printlnFn("Homework accepted. XP:", a.profile.XP)
	return nil
}

const homeworkXPReward = 250

// Chat sends one message to the AI coach and appends both sides of the
// exchange to the persisted history.
func (a *App) Chat(ctx context.Context) error {
	message, err := GetSimpleText(a.reader, "Your message", os.Stdout)
	if err != nil {
		return err
	}

	reply, err := a.oracle.SendChat(ctx, a.profile.ChatHistory, message)
	if err != nil {
		if errors.Is(err, common.ErrAIUnavailable) {
			_, _ = printlnFn("AI coach is unavailable, try again later.")
			return nil
		}
		return err
	}

	a.profile.ChatHistory = append(a.profile.ChatHistory,
		models.NewChatMessage("user", message),
		models.NewChatMessage("model", reply),
	)
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Coach:", reply)
	return nil
}

// ChatLog prints the persisted coaching conversation.
func (a *App) ChatLog(ctx context.Context) error {
	if len(a.profile.ChatHistory) == 0 {
		_, _ = printlnFn("No chat history.")
		return nil
	}
	for _, m := range a.profile.ChatHistory {
		_, _ = printlnFn(m.Timestamp.Format("2006-01-02 15:04"), m.Role+":", m.Text)
	}
	return nil
}
