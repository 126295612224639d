package generator

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/daedalus/internal/fakedata"
	"github.com/UnknownOlympus/daedalus/internal/models"
)

const (
	PhoneMin = 1000000000
	PhoneMax = 9999999999

	SalaryMin = 30000
	SalaryMax = 150000

	PasswordLength = 8
)

// PasswordAlphabet is ASCII letters, digits and a trailing 'm'.
// 'm' therefore appears twice and is sampled at double weight. This looks like a typo upstream
// but is kept so the generated distribution does not change silently.
const PasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + "m"

// Generator produces raw employee records. It owns the set of emails issued so far,
// so one Generator corresponds to one dataset run.
type Generator struct {
	src        fakedata.Source
	rng        *rand.Rand
	usedEmails map[string]struct{}
	collisions int
}

// New creates a Generator drawing personal data from src and everything else from rng.
func New(src fakedata.Source, rng *rand.Rand) *Generator {
	return &Generator{
		src:        src,
		rng:        rng,
		usedEmails: make(map[string]struct{}),
	}
}

// NewSeeded returns a PCG-backed random source for the given seed.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // synthetic data, not security sensitive
}

// Generate builds one unsanitized record.
func (g *Generator) Generate() models.EmployeeRecord {
	return models.EmployeeRecord{
		FirstName:   g.src.FirstName(),
		LastName:    g.src.LastName(),
		JobTitle:    g.src.JobTitle(),
		Department:  string(g.Department()),
		Email:       g.UniqueEmail(),
		Address:     g.src.Address(),
		PhoneNumber: strconv.FormatInt(g.intInRange(PhoneMin, PhoneMax), 10),
		Salary:      strconv.FormatInt(g.intInRange(SalaryMin, SalaryMax), 10),
		Password:    g.Password(),
	}
}

// Department picks a department uniformly.
func (g *Generator) Department() models.Department {
	return models.Departments[g.rng.IntN(len(models.Departments))]
}

// UniqueEmail asks the source for emails until one has not been issued in this run.
//
// There is no retry cap: termination is only probabilistic. A source with a value space
// smaller than the number of requested records loops forever.
func (g *Generator) UniqueEmail() string {
	email := g.src.Email()
	for g.isUsed(email) {
		g.collisions++
		email = g.src.Email()
	}
	g.usedEmails[email] = struct{}{}

	return email
}

// Password returns PasswordLength characters sampled from PasswordAlphabet.
func (g *Generator) Password() string {
	var sbr strings.Builder
	sbr.Grow(PasswordLength)

	for range PasswordLength {
		sbr.WriteByte(PasswordAlphabet[g.rng.IntN(len(PasswordAlphabet))])
	}

	return sbr.String()
}

// IssuedEmails returns how many distinct emails were handed out.
func (g *Generator) IssuedEmails() int {
	return len(g.usedEmails)
}

// Collisions returns how many candidate emails were rejected as duplicates.
func (g *Generator) Collisions() int {
	return g.collisions
}

func (g *Generator) isUsed(email string) bool {
	_, ok := g.usedEmails[email]
	return ok
}

// intInRange returns an integer in [low, high], both ends included.
func (g *Generator) intInRange(low, high int64) int64 {
	return low + g.rng.Int64N(high-low+1)
}
