package domain

import (
	"errors"
	"strings"
	"time"
)

// PetStatus describes availability. The set is open; Available and Adopted
// are the values the adoption workflow relies on.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "Available"
	PetStatusAdopted   PetStatus = "Adopted"
)

var (
	ErrEmptyPetName   = errors.New("pet name must not be empty")
	ErrNegativeAge    = errors.New("pet age must be zero or greater")
	ErrMissingAddedBy = errors.New("pet addedBy is required")
)

// Pet is an animal listed by a user.
type Pet struct {
	ID          int64
	Name        string
	Species     string
	Breed       string
	Age         int
	Gender      string
	Status      PetStatus
	Description string
	ImageURL    string
	AddedBy     int64
	CreatedAt   time.Time
}

// NewPet validates and constructs a Pet. An empty status defaults to Available.
func NewPet(name, species, breed string, age int, gender string, status PetStatus, description, imageURL string, addedBy int64, createdAt time.Time) (*Pet, error) {
	pet := &Pet{
		Name:        strings.TrimSpace(name),
		Species:     strings.TrimSpace(species),
		Breed:       strings.TrimSpace(breed),
		Age:         age,
		Gender:      strings.TrimSpace(gender),
		Status:      PetStatus(strings.TrimSpace(string(status))),
		Description: description,
		ImageURL:    strings.TrimSpace(imageURL),
		AddedBy:     addedBy,
		CreatedAt:   createdAt,
	}
	if pet.Status == "" {
		pet.Status = PetStatusAvailable
	}
	if err := pet.Validate(); err != nil {
		return nil, err
	}
	return pet, nil
}

// Validate enforces invariants on the pet.
func (p *Pet) Validate() error {
	if p.Name == "" {
		return ErrEmptyPetName
	}
	if p.Age < 0 {
		return ErrNegativeAge
	}
	if p.AddedBy <= 0 {
		return ErrMissingAddedBy
	}
	return nil
}

// MarkAdopted flips availability. Reapplying it is a no-op.
func (p *Pet) MarkAdopted() {
	p.Status = PetStatusAdopted
}

// IsAdopted reports whether the pet has been adopted.
func (p *Pet) IsAdopted() bool {
	return strings.EqualFold(string(p.Status), string(PetStatusAdopted))
}

// PetFilter narrows pet listings. Empty fields match everything; comparisons ignore case.
type PetFilter struct {
	Species string
	Status  string
}

// Matches reports whether p satisfies the filter.
func (f PetFilter) Matches(p *Pet) bool {
	if f.Species != "" && !strings.EqualFold(strings.TrimSpace(f.Species), p.Species) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(strings.TrimSpace(f.Status), string(p.Status)) {
		return false
	}
	return true
}
