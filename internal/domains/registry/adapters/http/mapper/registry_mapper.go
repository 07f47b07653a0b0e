package mapper

import (
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
)

// RegisterUserRequest is the inbound payload for user registration.
type RegisterUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CredentialHash string `json:"credentialHash,omitempty"`
	Role           string `json:"role,omitempty"`
	Status         string `json:"status,omitempty"`
	ContactNumber  string `json:"contactNumber,omitempty"`
	Address        string `json:"address,omitempty"`
}

// UpdateUserRequest keeps field presence so omitted fields stay unchanged.
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	Address       *string `json:"address,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// User is the outbound user representation. The credential hash is never exposed.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	RoleID        int64     `json:"roleId"`
	Status        string    `json:"status"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AddPetRequest is the inbound payload for listing a pet.
type AddPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species,omitempty"`
	Breed       string `json:"breed,omitempty"`
	Age         int    `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	AddedBy     *int64 `json:"addedBy"`
}

// Pet is the outbound pet representation.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species,omitempty"`
	Breed       string    `json:"breed,omitempty"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	AddedBy     int64     `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateRoleRequest is the inbound payload for a new role.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// Role is the outbound role representation.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToRegisterUserInput(req RegisterUserRequest) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		Name:           req.Name,
		Email:          req.Email,
		CredentialHash: req.CredentialHash,
		RoleName:       req.Role,
		Status:         req.Status,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
	}
}

func ToUpdateUserInput(id int64, req UpdateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Status:        req.Status,
	}
}

func ToAddPetInput(req AddPetRequest) ports.AddPetInput {
	return ports.AddPetInput{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Age:         req.Age,
		Gender:      req.Gender,
		Status:      req.Status,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		AddedBy:     req.AddedBy,
	}
}

func FromUser(user *domain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		RoleID:        user.RoleID,
		Status:        string(user.Status),
		ContactNumber: user.ContactNumber,
		Address:       user.Address,
		CreatedAt:     user.CreatedAt,
	}
}

func FromUsers(users []*domain.User) []User {
	out := make([]User, 0, len(users))
	for _, user := range users {
		out = append(out, FromUser(user))
	}
	return out
}

func FromPet(pet *domain.Pet) Pet {
	if pet == nil {
		return Pet{}
	}
	return Pet{
		ID:          pet.ID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Gender:      pet.Gender,
		Status:      string(pet.Status),
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		AddedBy:     pet.AddedBy,
		CreatedAt:   pet.CreatedAt,
	}
}

func FromPets(pets []*domain.Pet) []Pet {
	out := make([]Pet, 0, len(pets))
	for _, pet := range pets {
		out = append(out, FromPet(pet))
	}
	return out
}

func FromRoles(roles []*domain.Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, Role{ID: role.ID, Name: role.Name})
	}
	return out
}
