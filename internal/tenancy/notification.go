package tenancy

import (
	"context"

	"github.com/beesaferoot/tenancy/internal/access"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Notifications belong to their recipient alone. ADMIN gets no override
// on any of these operations.
type Notifications struct {
	*core
}

// dispatch inserts a notification inside the caller's transaction, so it
// commits or rolls back with the change that produced it.
func (s *Notifications) dispatch(tx *store.Store, recipientID uint, title, message string, typ models.NotificationType) error {
	if _, err := tx.FindUser(recipientID); err != nil {
		return err
	}
	n := &models.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        typ,
		CreatedAt:   s.now().UTC(),
	}
	if err := tx.CreateNotification(n); err != nil {
		return err
	}
	s.log.Debug("notification dispatched", "recipient", recipientID, "title", title)
	return nil
}

// ForRecipient lists the actor's notifications, newest first.
func (s *Notifications) ForRecipient(ctx context.Context, actor models.Actor) ([]models.Notification, error) {
	return s.store.WithContext(ctx).NotificationsByRecipient(actor.ID)
}

func (s *Notifications) UnreadCount(ctx context.Context, actor models.Actor) (int64, error) {
	return s.store.WithContext(ctx).UnreadCount(actor.ID)
}

func (s *Notifications) MarkRead(ctx context.Context, actor models.Actor, id uint) (*models.Notification, error) {
	var read *models.Notification
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		n, err := s.owned(tx, actor, id)
		if err != nil {
			return err
		}
		n.IsRead = true
		if err := tx.SaveNotification(n); err != nil {
			return err
		}
		read = n
		return nil
	})
	if err := s.finish("notification", "mark_read", err, "actor", actor.ID, "notification_id", id); err != nil {
		return nil, err
	}
	return read, nil
}

// MarkAllRead flags every unread notification of the actor and returns how
// many changed.
func (s *Notifications) MarkAllRead(ctx context.Context, actor models.Actor) (int64, error) {
	var changed int64
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		changed, err = tx.MarkAllRead(actor.ID)
		return err
	})
	if err := s.finish("notification", "mark_all_read", err, "actor", actor.ID, "count", changed); err != nil {
		return 0, err
	}
	return changed, nil
}

func (s *Notifications) Delete(ctx context.Context, actor models.Actor, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := s.owned(tx, actor, id); err != nil {
			return err
		}
		return tx.DeleteNotification(id)
	})
	return s.finish("notification", "delete", err, "actor", actor.ID, "notification_id", id)
}

func (s *Notifications) owned(tx *store.Store, actor models.Actor, id uint) (*models.Notification, error) {
	n, err := tx.FindNotification(id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeStrict(actor, "notification", n.RecipientID); err != nil {
		return nil, err
	}
	return n, nil
}
