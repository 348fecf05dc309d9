package fallback

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/teerapatch/rodhai/models"
)

// Vehicle is a lost-car report in the local registry. Tips live inside the
// report that owns them.
type Vehicle struct {
	ID               string `json:"id"`
	LicensePlate     string `json:"license_plate"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	Color            string `json:"color"`
	LastSeenLocation string `json:"last_seen_location"`
	LastSeenDate     string `json:"last_seen_date"`
	OwnerName        string `json:"owner_name"`
	OwnerID          string `json:"owner_id"`
	Contact          string `json:"contact"`
	ImageURL         string `json:"image_url"`
	Status           string `json:"status"`
	Reward           int    `json:"reward"`
	Tips             []Tip  `json:"tips"`
}

type Tip struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Location string `json:"location"`
	ImageURL string `json:"image_url"`
	TipperID string `json:"tipper_id"`
	Status   string `json:"status"`
}

var (
	ErrNotAuthenticated = errors.New("no authenticated user")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrTipNotFound      = errors.New("tip not found")
)

// Registry keeps the in-memory list of vehicle reports for the local data
// path and writes the whole registry back to the store after every mutation.
// A failed write is logged, never retried; in-memory state stays live.
type Registry struct {
	store    *Store
	roster   *Roster
	notifier Notifier

	mu       sync.Mutex
	vehicles []Vehicle
	lastID   int64
}

func NewRegistry(store *Store, roster *Roster, notifier Notifier) *Registry {
	r := &Registry{store: store, roster: roster, notifier: notifier}
	if err := store.Read(VehiclesKey, &r.vehicles); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load vehicles from local store: %v", err)
		}
		r.vehicles = seedVehicles()
		if err := store.Write(VehiclesKey, r.vehicles); err != nil {
			log.Printf("failed to persist seeded vehicles: %v", err)
		}
	}
	return r
}

func seedVehicles() []Vehicle {
	return []Vehicle{
		{
			ID:               "1",
			LicensePlate:     "กข 1234",
			Brand:            "Toyota",
			Model:            "Vios",
			Color:            "black",
			LastSeenLocation: "Siam Paragon, Bangkok",
			LastSeenDate:     "2025-06-19T10:00:00Z",
			OwnerName:        "Somchai Jaidee",
			OwnerID:          "owner-1",
			Contact:          "081-234-5678",
			ImageURL:         "A black Toyota Vios sedan parked on a city street",
			Status:           models.StatusMissing,
			Reward:           500,
			Tips:             []Tip{},
		},
		{
			ID:               "2",
			LicensePlate:     "ษล 5678",
			Brand:            "Honda",
			Model:            "Civic",
			Color:            "white",
			LastSeenLocation: "CentralWorld, Bangkok",
			LastSeenDate:     "2025-06-18T18:30:00Z",
			OwnerName:        "Somying Suayngam",
			OwnerID:          "owner-2",
			Contact:          "082-345-6789",
			ImageURL:         "A white Honda Civic hatchback in a parking lot",
			Status:           models.StatusMissing,
			Reward:           0,
			Tips: []Tip{
				{
					ID:       "tip1",
					Message:  "Saw a similar car at Lat Phrao",
					Location: "Lat Phrao",
					TipperID: "mock-user-id",
					Status:   models.TipPending,
				},
			},
		},
	}
}

// nextID returns a time-based identifier, bumped when two mutations land in
// the same millisecond so ids stay unique.
func (r *Registry) nextID() string {
	id := time.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func (r *Registry) persistLocked() {
	vehicles := append([]Vehicle(nil), r.vehicles...)
	if err := r.store.Write(VehiclesKey, vehicles); err != nil {
		log.Printf("failed to persist vehicles to local store: %v", err)
	}
}

// List returns all reports in insertion order.
func (r *Registry) List() []Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Vehicle(nil), r.vehicles...)
}

// GetByID scans for a report by id.
func (r *Registry) GetByID(id string) (Vehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Add appends a new report owned by the session user: fresh id, status
// missing, empty tips, reward kept (defaulting to 0). Callers must guard
// authentication; an unauthenticated Add is an error with no side effects.
func (r *Registry) Add(draft Vehicle) (Vehicle, error) {
	user := r.roster.CurrentUser()
	if user == nil {
		return Vehicle{}, ErrNotAuthenticated
	}

	r.mu.Lock()
	draft.ID = r.nextID()
	draft.Status = models.StatusMissing
	draft.OwnerID = user.ID
	draft.OwnerName = user.FullName
	draft.Tips = []Tip{}
	r.vehicles = append(r.vehicles, draft)
	r.persistLocked()
	r.mu.Unlock()

	r.notifier.Notify("Success!", "Your lost-car report has been submitted.", models.SeveritySuccess)
	return draft, nil
}

// AddTip appends a pending tip to a report and pays the fixed award to the
// submitting user. Without a session nothing is mutated and no points move.
// There is deliberately no duplicate guard: the same user may keep
// submitting tips for the same report.
func (r *Registry) AddTip(vehicleID string, draft Tip) error {
	user := r.roster.CurrentUser()
	if user == nil {
		r.notifier.Notify("Please log in before submitting a tip", "", models.SeverityDestructive)
		return ErrNotAuthenticated
	}

	r.mu.Lock()
	idx := -1
	for i := range r.vehicles {
		if r.vehicles[i].ID == vehicleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return ErrVehicleNotFound
	}

	draft.ID = r.nextID()
	draft.TipperID = user.ID
	draft.Status = models.TipPending
	r.vehicles[idx].Tips = append(r.vehicles[idx].Tips, draft)
	r.persistLocked()
	r.mu.Unlock()

	r.roster.AwardPoints(user.ID, models.TipAwardPoints)
	r.notifier.Notify("Thanks for the tip! (+10 points)", "Your information has been sent for review.", models.SeverityInfo)
	return nil
}

// UpdateTipStatus overwrites one tip's status, leaving every other tip
// untouched. Authorization is gated at the HTTP layer, not here.
func (r *Registry) UpdateTipStatus(vehicleID, tipID, status string) error {
	r.mu.Lock()
	for i := range r.vehicles {
		if r.vehicles[i].ID != vehicleID {
			continue
		}
		for j := range r.vehicles[i].Tips {
			if r.vehicles[i].Tips[j].ID == tipID {
				r.vehicles[i].Tips[j].Status = status
				r.persistLocked()
				r.mu.Unlock()
				r.notifier.Notify("Tip status updated", "", models.SeveritySuccess)
				return nil
			}
		}
		r.mu.Unlock()
		return ErrTipNotFound
	}
	r.mu.Unlock()
	return ErrVehicleNotFound
}
