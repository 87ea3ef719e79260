package services

import (
	"errors"
	"testing"
	"time"

	"grow-diary/internal/database"
)

type fakeReminderRepo struct {
	reminders map[string]database.Reminder
	sent      []string
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]database.Reminder)}
}

func (f *fakeReminderRepo) AddReminder(r database.Reminder) error {
	f.reminders[r.ID] = r
	return nil
}

func (f *fakeReminderRepo) DeleteReminder(id string) error {
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderRepo) GetDueReminders(now time.Time) ([]database.Reminder, error) {
	var due []database.Reminder
	for _, r := range f.reminders {
		if !r.Sent && !r.FireAt.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (f *fakeReminderRepo) MarkReminderSent(id string) error {
	r := f.reminders[id]
	r.Sent = true
	f.reminders[id] = r
	f.sent = append(f.sent, id)
	return nil
}

type fakeSender struct {
	messages  []string
	reminders []database.Reminder
	fail      bool
}

func (f *fakeSender) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSender) SendReminder(r database.Reminder) error {
	if f.fail {
		return errTestSend
	}
	f.reminders = append(f.reminders, r)
	return nil
}

var errTestSend = errors.New("send failed")

func TestSchedule(t *testing.T) {
	t.Run("FutureReminderStored", func(t *testing.T) {
		repo := newFakeReminderRepo()
		ns := NewNotificationService(repo, nil)

		event := database.PlantEvent{
			ID: "ev-1", PlantID: "plant-1", Title: "Полив",
			Date: time.Now().Add(2 * time.Hour),
		}
		handle, err := ns.Schedule(event, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if handle == "" {
			t.Fatal("expected a handle for a future reminder")
		}
		stored, ok := repo.reminders[handle]
		if !ok {
			t.Fatal("reminder not stored")
		}
		want := event.Date.Add(-30 * time.Minute)
		if !stored.FireAt.Equal(want) {
			t.Errorf("fireAt %v, want %v", stored.FireAt, want)
		}
	})

	t.Run("PastReminderYieldsEmptyHandle", func(t *testing.T) {
		repo := newFakeReminderRepo()
		ns := NewNotificationService(repo, nil)

		event := database.PlantEvent{
			ID: "ev-1", PlantID: "plant-1",
			Date: time.Now().Add(10 * time.Minute),
		}
		// за час до события, которое через 10 минут — время уже прошло
		handle, err := ns.Schedule(event, 60)
		if err != nil {
			t.Fatalf("past reminder must not be an error: %v", err)
		}
		if handle != "" {
			t.Errorf("expected empty handle, got %q", handle)
		}
		if len(repo.reminders) != 0 {
			t.Error("past reminder must not be stored")
		}
	})
}

func TestCancel(t *testing.T) {
	repo := newFakeReminderRepo()
	ns := NewNotificationService(repo, nil)

	handle, err := ns.Schedule(database.PlantEvent{
		ID: "ev-1", Date: time.Now().Add(time.Hour),
	}, 5)
	if err != nil {
		t.Fatal(err)
	}

	if err := ns.Cancel(handle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.reminders) != 0 {
		t.Error("reminder not removed")
	}

	// пустой handle — напоминание не регистрировалось, отменять нечего
	if err := ns.Cancel(""); err != nil {
		t.Errorf("empty handle must be a no-op, got %v", err)
	}
}

func TestCheckAndSendReminders(t *testing.T) {
	t.Run("SendsOnlyDue", func(t *testing.T) {
		repo := newFakeReminderRepo()
		ns := NewNotificationService(repo, nil)
		sender := &fakeSender{}
		ns.SetSender(sender)

		now := time.Now()
		repo.AddReminder(database.Reminder{ID: "due", FireAt: now.Add(-time.Minute)})
		repo.AddReminder(database.Reminder{ID: "later", FireAt: now.Add(time.Hour)})

		ns.CheckAndSendReminders()

		if len(sender.reminders) != 1 || sender.reminders[0].ID != "due" {
			t.Fatalf("sent %v, want only the due reminder", sender.reminders)
		}
		if !repo.reminders["due"].Sent {
			t.Error("sent reminder not marked")
		}

		// повторный прогон ничего не шлет
		ns.CheckAndSendReminders()
		if len(sender.reminders) != 1 {
			t.Errorf("reminder sent twice: %d sends", len(sender.reminders))
		}
	})

	t.Run("SendFailureLeavesReminderPending", func(t *testing.T) {
		repo := newFakeReminderRepo()
		ns := NewNotificationService(repo, nil)
		sender := &fakeSender{fail: true}
		ns.SetSender(sender)

		repo.AddReminder(database.Reminder{ID: "due", FireAt: time.Now().Add(-time.Minute)})
		ns.CheckAndSendReminders()

		if repo.reminders["due"].Sent {
			t.Error("failed send must not mark the reminder as sent")
		}
	})

	t.Run("NoSenderIsSilent", func(t *testing.T) {
		repo := newFakeReminderRepo()
		ns := NewNotificationService(repo, nil)
		repo.AddReminder(database.Reminder{ID: "due", FireAt: time.Now().Add(-time.Minute)})

		// не должно паниковать без отправителя
		ns.CheckAndSendReminders()
	})
}
