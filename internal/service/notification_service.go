package service

import (
	"log"

	"converso/internal/models"
	"converso/internal/repository"
)

// NotificationService records in-app notices. Delivery is best-effort by
// contract: a failed insert is logged, never returned, so a notice can never
// fail the award it rides along with.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(userID uint, kind, title, body string) {
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		log.Printf("notification: create failed for user %d: %v", userID, err)
	}
}

func (s *NotificationService) List(userID uint, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByUserID(userID, limit, offset)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.repo.MarkRead(id, userID)
}
