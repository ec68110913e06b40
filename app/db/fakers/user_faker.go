package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"
	"github.com/tiendita/storefront/app/models"
)

func UserFaker() *models.User {
	user := &models.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Role:      models.RoleCustomer,
	}
	if err := user.SetPassword("secret"); err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}
	return user
}

func AdminFaker() *models.User {
	admin := UserFaker()
	admin.Email = "admin@storefront.local"
	admin.Role = models.RoleAdmin
	return admin
}
