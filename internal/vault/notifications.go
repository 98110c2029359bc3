package vault

import (
	"sync"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// Notifications is the append-only, capacity-bounded event queue. The
// ledgers and the directory push into it; it never reaches back into them.
type Notifications struct {
	mu    sync.Mutex
	store kv.Store
	items []domain.Notification
}

func NewNotifications(store kv.Store) (*Notifications, error) {
	n := &Notifications{store: store}
	if err := n.Reload(); err != nil {
		return nil, err
	}
	return n, nil
}

// Reload re-reads the queue from the store, discarding the cache.
func (n *Notifications) Reload() error {
	items, err := loadList[domain.Notification](n.store, keyNotifications)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.items = items
	n.mu.Unlock()
	return nil
}

// Push appends a new unread entry at the head and drops anything beyond
// the cap.
func (n *Notifications) Push(message, ntype string) (domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	item := domain.NewNotification(message, ntype)
	next := make([]domain.Notification, 0, len(n.items)+1)
	next = append(next, item)
	next = append(next, n.items...)
	if len(next) > domain.NotificationCap {
		next = next[:domain.NotificationCap]
	}
	if err := persistList(n.store, keyNotifications, next); err != nil {
		return domain.Notification{}, err
	}
	n.items = next
	return item, nil
}

// MarkRead flips an entry to read. A missing id is a silent no-op.
func (n *Notifications) MarkRead(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	idx := -1
	for i := range n.items {
		if n.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || n.items[idx].Read {
		return nil
	}
	next := make([]domain.Notification, len(n.items))
	copy(next, n.items)
	next[idx].Read = true
	if err := persistList(n.store, keyNotifications, next); err != nil {
		return err
	}
	n.items = next
	return nil
}

// UnreadCount counts entries not yet marked read.
func (n *Notifications) UnreadCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, item := range n.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// List returns the queue newest-first.
func (n *Notifications) List() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, len(n.items))
	copy(out, n.items)
	return out
}
