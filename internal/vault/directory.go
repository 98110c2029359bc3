package vault

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// Directory manages the list of authorized principals. Decoded PINs are the
// login credential, so their uniqueness is re-checked on every mutation with
// a linear scan; directory sizes are household-scale.
type Directory struct {
	mu         sync.Mutex
	store      kv.Store
	session    *Session
	notes      *Notifications
	principals []domain.Principal
}

func NewDirectory(store kv.Store, session *Session, notes *Notifications) (*Directory, error) {
	d := &Directory{store: store, session: session, notes: notes}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the principal list from the store.
func (d *Directory) Reload() error {
	principals, err := loadList[domain.Principal](d.store, keyUsers)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.principals = principals
	d.mu.Unlock()
	return nil
}

// Initialized reports whether first-run setup has happened.
func (d *Directory) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.principals) > 0
}

// Initialize performs first-run setup: creates the sole admin principal and
// establishes a session for it. Fails once any principal exists.
func (d *Directory) Initialize(name, pin, confirmPIN string) (domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.principals) > 0 {
		return domain.Principal{}, fmt.Errorf("%w: already initialized", domain.ErrConflict)
	}
	if strings.TrimSpace(name) == "" || pin == "" || confirmPIN == "" {
		return domain.Principal{}, fmt.Errorf("%w: please fill all fields", domain.ErrValidation)
	}
	if err := domain.ValidatePIN(pin); err != nil {
		return domain.Principal{}, err
	}
	if pin != confirmPIN {
		return domain.Principal{}, fmt.Errorf("%w: PINs do not match", domain.ErrValidation)
	}
	admin := domain.NewPrincipal(name, pin, domain.RoleAdmin)
	if err := persistList(d.store, keyUsers, []domain.Principal{admin}); err != nil {
		return domain.Principal{}, err
	}
	d.principals = []domain.Principal{admin}
	if err := d.session.Establish(admin); err != nil {
		return domain.Principal{}, err
	}
	logrus.WithField("principal", admin.ID).Info("vault initialized")
	return admin, nil
}

// Authenticate scans for a principal whose decoded PIN matches and
// establishes a session for it. The error carries no hint about which PINs
// exist.
func (d *Directory) Authenticate(pin string) (domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pin == "" {
		return domain.Principal{}, fmt.Errorf("%w: please enter your PIN", domain.ErrValidation)
	}
	for _, p := range d.principals {
		decoded, err := domain.DecodePIN(p.PIN)
		if err != nil {
			logrus.WithField("principal", p.ID).Warn("skipping principal with malformed PIN encoding")
			continue
		}
		if decoded == pin {
			if err := d.session.Establish(p); err != nil {
				return domain.Principal{}, err
			}
			logrus.WithField("principal", p.ID).Info("login succeeded")
			return p, nil
		}
	}
	return domain.Principal{}, fmt.Errorf("%w: invalid PIN", domain.ErrAuthentication)
}

// AddMember appends a new principal. Caller is expected to have passed the
// admin check already.
func (d *Directory) AddMember(name, pin, role string) (domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if strings.TrimSpace(name) == "" || pin == "" {
		return domain.Principal{}, fmt.Errorf("%w: please fill all fields", domain.ErrValidation)
	}
	if err := domain.ValidatePIN(pin); err != nil {
		return domain.Principal{}, err
	}
	if err := domain.ValidateRole(role); err != nil {
		return domain.Principal{}, err
	}
	if d.pinTakenLocked(pin, "") {
		return domain.Principal{}, fmt.Errorf("%w: this PIN is already in use", domain.ErrConflict)
	}
	member := domain.NewPrincipal(name, pin, role)
	next := append(append([]domain.Principal{}, d.principals...), member)
	if err := persistList(d.store, keyUsers, next); err != nil {
		return domain.Principal{}, err
	}
	d.principals = next
	d.notify(fmt.Sprintf("Member %q added successfully!", member.Name))
	logrus.WithFields(logrus.Fields{"principal": member.ID, "role": member.Role}).Info("member added")
	return member, nil
}

// UpdateMember edits name, role and optionally the PIN of a principal. An
// empty pin leaves the stored PIN unchanged. The admin principal cannot be
// demoted.
func (d *Directory) UpdateMember(id, name, pin, role string) (domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(id)
	if idx == -1 {
		return domain.Principal{}, fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	if strings.TrimSpace(name) == "" {
		return domain.Principal{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := domain.ValidateRole(role); err != nil {
		return domain.Principal{}, err
	}
	if pin != "" {
		if err := domain.ValidatePIN(pin); err != nil {
			return domain.Principal{}, err
		}
		if d.pinTakenLocked(pin, id) {
			return domain.Principal{}, fmt.Errorf("%w: this PIN is already in use", domain.ErrConflict)
		}
	}
	if d.principals[idx].Role == domain.RoleAdmin && role != domain.RoleAdmin {
		return domain.Principal{}, fmt.Errorf("%w: cannot change administrator role", domain.ErrPermission)
	}
	next := make([]domain.Principal, len(d.principals))
	copy(next, d.principals)
	next[idx].Name = strings.TrimSpace(name)
	next[idx].Role = role
	if pin != "" {
		next[idx].PIN = domain.EncodePIN(pin)
	}
	if err := persistList(d.store, keyUsers, next); err != nil {
		return domain.Principal{}, err
	}
	d.principals = next
	updated := next[idx]
	if err := d.session.Refresh(updated); err != nil {
		logrus.WithError(err).Warn("failed to refresh session snapshot")
	}
	d.notify("Member updated successfully!")
	return updated, nil
}

// DeleteMember removes a principal. The admin principal is protected, and
// the member's transactions are preserved with their attribution snapshot.
func (d *Directory) DeleteMember(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(id)
	if idx == -1 {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	if d.principals[idx].Role == domain.RoleAdmin {
		return fmt.Errorf("%w: cannot delete administrator account", domain.ErrPermission)
	}
	next := make([]domain.Principal, 0, len(d.principals)-1)
	for _, p := range d.principals {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if err := persistList(d.store, keyUsers, next); err != nil {
		return err
	}
	d.principals = next
	d.notify("Member deleted successfully!")
	logrus.WithField("principal", id).Info("member deleted")
	return nil
}

// ChangeOwnPIN is the self-service PIN change for the session principal.
func (d *Directory) ChangeOwnPIN(actor domain.Principal, currentPIN, newPIN, confirmPIN string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if currentPIN == "" || newPIN == "" || confirmPIN == "" {
		return fmt.Errorf("%w: please fill all fields", domain.ErrValidation)
	}
	if err := domain.ValidatePIN(newPIN); err != nil {
		return err
	}
	if newPIN != confirmPIN {
		return fmt.Errorf("%w: new PINs do not match", domain.ErrValidation)
	}
	idx := d.indexLocked(actor.ID)
	if idx == -1 {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, actor.ID)
	}
	decoded, err := domain.DecodePIN(d.principals[idx].PIN)
	if err != nil {
		return err
	}
	if decoded != currentPIN {
		return fmt.Errorf("%w: current PIN is incorrect", domain.ErrAuthentication)
	}
	if d.pinTakenLocked(newPIN, actor.ID) {
		return fmt.Errorf("%w: this PIN is already in use", domain.ErrConflict)
	}
	next := make([]domain.Principal, len(d.principals))
	copy(next, d.principals)
	next[idx].PIN = domain.EncodePIN(newPIN)
	if err := persistList(d.store, keyUsers, next); err != nil {
		return err
	}
	d.principals = next
	if err := d.session.Refresh(next[idx]); err != nil {
		logrus.WithError(err).Warn("failed to refresh session snapshot")
	}
	d.notify("PIN changed successfully!")
	return nil
}

// List returns all principals.
func (d *Directory) List() []domain.Principal {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.Principal, len(d.principals))
	copy(out, d.principals)
	return out
}

// ByID looks a principal up by id.
func (d *Directory) ByID(id string) (domain.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(id)
	if idx == -1 {
		return domain.Principal{}, fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	return d.principals[idx], nil
}

func (d *Directory) indexLocked(id string) int {
	for i := range d.principals {
		if d.principals[i].ID == id {
			return i
		}
	}
	return -1
}

// pinTakenLocked reports whether any principal other than excludeID decodes
// to pin.
func (d *Directory) pinTakenLocked(pin, excludeID string) bool {
	for _, p := range d.principals {
		if p.ID == excludeID {
			continue
		}
		decoded, err := domain.DecodePIN(p.PIN)
		if err != nil {
			continue
		}
		if decoded == pin {
			return true
		}
	}
	return false
}

// notify records a user-visible event; queue failures are logged, never
// propagated into the directory operation.
func (d *Directory) notify(message string) {
	if d.notes == nil {
		return
	}
	if _, err := d.notes.Push(message, "success"); err != nil {
		logrus.WithError(err).Warn("failed to record notification")
	}
}
