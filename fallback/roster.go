package fallback

import (
	"log"
	"os"
	"sort"
	"sync"

	"github.com/teerapatch/rodhai/models"
)

// MockUser is a roster entry for the local data path.
type MockUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Points    int    `json:"points"`
	IsAdmin   bool   `json:"is_admin"`
}

// Roster is the local-session source of truth: who is signed in and the
// point totals behind the leaderboard. Every mutation rewrites the whole
// roster entry in the store; storage failures are logged and swallowed, the
// in-memory state stays authoritative for the session.
type Roster struct {
	store    *Store
	notifier Notifier

	mu      sync.Mutex
	users   []MockUser
	current *MockUser
}

func NewRoster(store *Store, notifier Notifier) *Roster {
	r := &Roster{store: store, notifier: notifier}
	if err := store.Read(UsersKey, &r.users); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load users from local store: %v", err)
		}
		r.users = seedUsers()
		if err := store.Write(UsersKey, r.users); err != nil {
			log.Printf("failed to persist seeded users: %v", err)
		}
	}
	return r
}

// seedUsers installs exactly one mock admin with zero points, matching a
// fresh install.
func seedUsers() []MockUser {
	return []MockUser{
		{
			ID:        "mock-user-id",
			Email:     "user@line.me",
			FullName:  "LINE User",
			AvatarURL: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=100&h=100&fit=crop",
			Points:    0,
			IsAdmin:   true,
		},
	}
}

// CurrentUser returns the signed-in user, or nil.
func (r *Roster) CurrentUser() *MockUser {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	u := *r.current
	return &u
}

// SignIn marks the roster entry with the given id as the session user.
func (r *Roster) SignIn(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == userID {
			u := r.users[i]
			r.current = &u
			return true
		}
	}
	return false
}

// Logout clears the session locally. No backend round trip is needed.
func (r *Roster) Logout() {
	r.mu.Lock()
	r.current = nil
	r.mu.Unlock()
	r.notifier.Notify("Signed out", "", models.SeveritySuccess)
}

// AwardPoints increments a user's point total and persists the roster. When
// the affected user is the session user the session copy is refreshed too.
// Amount is not validated; call sites only pass positive awards.
func (r *Roster) AwardPoints(userID string, amount int) {
	r.mu.Lock()
	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].Points += amount
			if r.current != nil && r.current.ID == userID {
				u := r.users[i]
				r.current = &u
			}
			break
		}
	}
	users := append([]MockUser(nil), r.users...)
	r.mu.Unlock()

	if err := r.store.Write(UsersKey, users); err != nil {
		log.Printf("failed to persist users to local store: %v", err)
	}
}

// Users returns the roster in stored order.
func (r *Roster) Users() []MockUser {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MockUser(nil), r.users...)
}

// Leaderboard returns the roster ordered by points descending.
func (r *Roster) Leaderboard() []MockUser {
	users := r.Users()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})
	return users
}
