package services

import (
	"grow-diary/internal/database"
	"grow-diary/internal/lunar"
	"grow-diary/internal/storage"
)

type ServiceManager struct {
	Plant        *PlantService
	Event        *EventService
	Note         *NoteService
	Notification *NotificationService
	Lunar        *lunar.Resolver
	repository   *database.Repository
}

func NewServiceManager(db *database.Database, photos *storage.PhotoStorage, resolver *lunar.Resolver) *ServiceManager {
	repo := database.NewRepository(db)

	notification := NewNotificationService(repo, resolver)
	events := NewEventService(repo, notification)
	plants := NewPlantService(repo, events, photos)
	notification.events = events
	notification.plants = plants

	return &ServiceManager{
		Plant:        plants,
		Event:        events,
		Note:         NewNoteService(repo),
		Notification: notification,
		Lunar:        resolver,
		repository:   repo,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification.SetSender(sender)
}
