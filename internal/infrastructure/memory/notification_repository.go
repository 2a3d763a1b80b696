package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// NotificationRepo notificaciones en memoria con índice único por DedupKey.
type NotificationRepo struct{ scope }

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) CreateIfAbsent(_ context.Context, n *entity.Notification) (bool, error) {
	created := false
	err := r.do(func(st *state) error {
		key := n.DedupKey()
		if _, exists := st.dedup[key]; exists {
			return nil
		}
		c := copyNotification(n)
		c.OldPrice = entity.NormalizePrice(c.OldPrice)
		c.NewPrice = entity.NormalizePrice(c.NewPrice)
		st.notifications = append(st.notifications, c)
		st.dedup[key] = n.ID
		created = true
		return nil
	})
	return created, err
}

func (r *NotificationRepo) List(_ context.Context) ([]*entity.Notification, error) {
	var out []*entity.Notification
	err := r.do(func(st *state) error {
		for i := len(st.notifications) - 1; i >= 0; i-- {
			out = append(out, copyNotification(st.notifications[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepo) ListPending(_ context.Context) ([]*entity.Notification, error) {
	var out []*entity.Notification
	err := r.do(func(st *state) error {
		for _, n := range st.notifications {
			if n.Status == entity.NotificationPending {
				out = append(out, copyNotification(n))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepo) Transition(_ context.Context, id, status string, sentAt *time.Time) (bool, error) {
	applied := false
	err := r.do(func(st *state) error {
		for _, n := range st.notifications {
			if n.ID != id {
				continue
			}
			if !entity.CanTransition(n.Status, status) {
				return nil
			}
			n.Status = status
			if sentAt != nil {
				t := *sentAt
				n.SentAt = &t
			}
			applied = true
			return nil
		}
		return nil
	})
	return applied, err
}
