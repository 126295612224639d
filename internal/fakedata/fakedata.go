// Package fakedata supplies plausible but synthetic personal data.
package fakedata

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/tamathecxder/randomail"
)

// Source produces fake personal values on demand.
type Source interface {
	FirstName() string
	LastName() string
	JobTitle() string
	Email() string
	Address() string
}

// Faker is the default Source backed by gofakeit.
type Faker struct {
	faker     *gofakeit.Faker
	emailFunc func() string
}

// New creates a Faker. A zero seed draws from a random seed and takes emails from randomail;
// any other seed makes every value, emails included, reproducible.
func New(seed uint64) *Faker {
	fkr := gofakeit.New(seed)

	emailFunc := randomail.GenerateRandomEmail
	if seed != 0 {
		emailFunc = fkr.Email
	}

	return &Faker{faker: fkr, emailFunc: emailFunc}
}

func (f *Faker) FirstName() string { return f.faker.FirstName() }

func (f *Faker) LastName() string { return f.faker.LastName() }

func (f *Faker) JobTitle() string { return f.faker.JobTitle() }

func (f *Faker) Email() string { return f.emailFunc() }

// Address returns a two-line postal address: street, then "city, state zip".
func (f *Faker) Address() string {
	addr := f.faker.Address()

	return fmt.Sprintf("%s\n%s, %s %s", addr.Street, addr.City, addr.State, addr.Zip)
}
