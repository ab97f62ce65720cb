package store

import (
	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreateNotification(n *models.Notification) error {
	return writeErr("notification", "create", s.db.Create(n).Error)
}

func (s *Store) SaveNotification(n *models.Notification) error {
	return writeErr("notification", "save", s.db.Save(n).Error)
}

func (s *Store) FindNotification(id uint) (*models.Notification, error) {
	return first[models.Notification](s, "notification", id)
}

func (s *Store) DeleteNotification(id uint) error {
	return writeErr("notification", "delete", s.db.Delete(&models.Notification{}, id).Error)
}

// NotificationsByRecipient returns the recipient's notifications, newest
// first.
func (s *Store) NotificationsByRecipient(recipientID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, writeErr("notification", "list by recipient", err)
}

func (s *Store) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, writeErr("notification", "count unread", err)
}

// MarkAllRead flags every unread notification of the recipient and reports
// how many changed.
func (s *Store) MarkAllRead(recipientID uint) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, writeErr("notification", "mark all read", res.Error)
}
