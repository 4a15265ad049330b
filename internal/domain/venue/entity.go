package venue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyVenueName   = errors.New("venue name cannot be empty")
	ErrVenueNameTooLong = errors.New("venue name is too long (max 255 characters)")
	ErrInvalidCapacity  = errors.New("venue must have at least one seat")
	ErrUnknownSeat      = errors.New("seat does not exist at this venue")
)

const (
	MaxVenueNameLength = 255
)

// Venue is read-only to reservations; they only consult its seat list.
type Venue struct {
	id        uuid.UUID
	name      string
	location  string
	seats     []string
	imageURL  string
	createdAt time.Time
	updatedAt time.Time
}

func NewVenue(id uuid.UUID, name, location string, seats []string, imageURL string) (*Venue, error) {
	if err := validateVenueName(name); err != nil {
		return nil, err
	}
	labels := sortedLabels(seats)
	if len(labels) == 0 {
		return nil, ErrInvalidCapacity
	}

	return &Venue{
		id:       id,
		name:     strings.TrimSpace(name),
		location: strings.TrimSpace(location),
		seats:    labels,
		imageURL: imageURL,
	}, nil
}

func ReconstructVenue(id uuid.UUID, name, location string, seats []string, imageURL string, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		id:        id,
		name:      name,
		location:  location,
		seats:     sortedLabels(seats),
		imageURL:  imageURL,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// CheckSeats rejects any label the venue does not have. Labels are expected
// in their normalized form.
func (v *Venue) CheckSeats(labels []string) error {
	var unknown []string
	for _, l := range labels {
		if !v.HasSeat(l) {
			unknown = append(unknown, l)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, strings.Join(unknown, ", "))
	}
	return nil
}

func (v *Venue) HasSeat(label string) bool {
	_, found := slices.BinarySearch(v.seats, label)
	return found
}

func sortedLabels(seats []string) []string {
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			labels = append(labels, s)
		}
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

func validateVenueName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyVenueName
	}
	if len(name) > MaxVenueNameLength {
		return ErrVenueNameTooLong
	}
	return nil
}

func (v *Venue) ID() uuid.UUID        { return v.id }
func (v *Venue) Name() string         { return v.name }
func (v *Venue) Location() string     { return v.location }
func (v *Venue) TotalSeats() int      { return len(v.seats) }
func (v *Venue) ImageURL() string     { return v.imageURL }
func (v *Venue) CreatedAt() time.Time { return v.createdAt }
func (v *Venue) UpdatedAt() time.Time { return v.updatedAt }
