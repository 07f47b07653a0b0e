//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pawsitive-drive-api"
	ConsumerName = "adoption-portal"

	StateDonorAndPetExist   = "donor 2 and pet 1 exist"
	StateDonationExists     = "donation 1 exists for donor 2"
	StateDonationMissing    = "no donation with id 404"
	StatePendingApplication = "application 1 is pending for pet 1"
)

const (
	AdminUserID        int64 = 1
	DonorUserID        int64 = 2
	ExistingPetID      int64 = 1
	ExistingDonationID int64 = 1
	MissingDonationID  int64 = 404
	PendingAppID       int64 = 1
)

// Seed records used by both sides of the contract.
const (
	AdminName    = "Pact Admin"
	AdminEmail   = "pact.admin@example.com"
	DonorName    = "Pact Donor"
	DonorEmail   = "pact.donor@example.com"
	DonorAddress = "1 Contract Way"
	PetName      = "Pact Rex"
	PetSpecies   = "Dog"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleDonationRequest is the donation body the portal sends.
func ExampleDonationRequest() map[string]any {
	return map[string]any{
		"userId":        DonorUserID,
		"amount":        25.5,
		"paymentMethod": "Card",
		"petId":         ExistingPetID,
		"notes":         "for the kennel fund",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
