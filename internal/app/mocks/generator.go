package mocks

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"adoptme/internal/common/security"
	"adoptme/internal/domain/model"

	"github.com/google/uuid"
)

// MockPassword is the fixed credential every generated user gets, so
// seeded environments have a known login.
const MockPassword = "coder123"

var (
	petNames = []string{
		"Luna", "Rocky", "Milo", "Bella", "Toby", "Coco", "Max", "Nala",
		"Simba", "Kira", "Bruno", "Lola", "Thor", "Maya", "Zeus", "Frida",
	}
	species = []string{"dog", "cat", "rabbit", "parrot"}

	firstNames = []string{
		"Ana", "Carlos", "Lucia", "Diego", "Valentina", "Mateo", "Sofia",
		"Javier", "Camila", "Andres", "Paula", "Martin", "Julieta", "Pablo",
	}
	lastNames = []string{
		"Garcia", "Rodriguez", "Lopez", "Martinez", "Fernandez", "Perez",
		"Gomez", "Diaz", "Torres", "Flores", "Rivera", "Sanchez",
	}
)

// GeneratePets produces qty synthetic pets, never persisted here.
// Every pet starts unadopted with no owner.
func GeneratePets(qty int) []*model.Pet {
	pets := make([]*model.Pet, 0, qty)
	for i := 0; i < qty; i++ {
		pets = append(pets, &model.Pet{
			ID:        uuid.NewString(),
			Name:      petNames[rand.Intn(len(petNames))],
			Specie:    species[rand.Intn(len(species))],
			BirthDate: randomBirthDate(1, 15),
			Image:     fmt.Sprintf("https://picsum.photos/300/300?random=%d", rand.Intn(100000)),
			Adopted:   false,
		})
	}
	return pets
}

// GenerateUsers produces qty synthetic users with the fixed mock
// password already hashed and an empty pets list.
func GenerateUsers(qty int) ([]*model.User, error) {
	// One hash for the whole batch; they all share the same password
	// and bcrypt is too slow to run thousands of times per request.
	hashedPassword, err := security.HashPassword(MockPassword)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, qty)
	for i := 0; i < qty; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		role := model.RoleUser
		if rand.Intn(2) == 0 {
			role = model.RoleAdmin
		}
		users = append(users, &model.User{
			ID:             uuid.NewString(),
			FirstName:      firstName,
			LastName:       lastName,
			Email:          fmt.Sprintf("%s.%s.%d@adoptme.dev", strings.ToLower(firstName), strings.ToLower(lastName), rand.Intn(1000000)),
			HashedPassword: hashedPassword,
			Role:           role,
			Pets:           []string{},
		})
	}
	return users, nil
}

func randomBirthDate(minAgeYears, maxAgeYears int) time.Time {
	ageDays := 365*minAgeYears + rand.Intn(365*(maxAgeYears-minAgeYears))
	return time.Now().AddDate(0, 0, -ageDays)
}
