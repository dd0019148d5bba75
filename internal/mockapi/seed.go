package mockapi

import (
	"fmt"

	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/models"
)

// DemoPassword is the only password the demo accepts.
const DemoPassword = common.DemoPassword

var seedNames = [][3]string{
	{"George", "Bluth", "george.bluth@reqres.in"},
	{"Janet", "Weaver", "janet.weaver@reqres.in"},
	{"Emma", "Wong", "emma.wong@reqres.in"},
	{"Eve", "Holt", "eve.holt@reqres.in"},
	{"Charles", "Morris", "charles.morris@reqres.in"},
	{"Tracey", "Ramos", "tracey.ramos@reqres.in"},
	{"Michael", "Lawson", "michael.lawson@reqres.in"},
	{"Lindsay", "Ferguson", "lindsay.ferguson@reqres.in"},
	{"Tobias", "Funke", "tobias.funke@reqres.in"},
	{"Byron", "Fields", "byron.fields@reqres.in"},
	{"George", "Edwards", "george.edwards@reqres.in"},
	{"Rachel", "Howell", "rachel.howell@reqres.in"},
}

// SeedUsers returns the twelve demo users in upstream order.
func SeedUsers() []models.User {
	users := make([]models.User, len(seedNames))
	for i, n := range seedNames {
		id := i + 1
		users[i] = models.User{
			ID:        id,
			FirstName: n[0],
			LastName:  n[1],
			Email:     n[2],
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		}
	}
	return users
}

// GenerateUsers returns n synthetic users with ids 1..n.
func GenerateUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		id := i + 1
		users[i] = models.User{
			ID:        id,
			FirstName: fmt.Sprintf("User%02d", id),
			LastName:  "Test",
			Email:     fmt.Sprintf("user%02d@example.test", id),
			Avatar:    fmt.Sprintf("https://example.test/img/%d.jpg", id),
		}
	}
	return users
}
