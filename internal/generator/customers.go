package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/internal/identity"
	pkgerrors "github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/errors"
	"github.com/DManojKumar3370/ecommerce-data-pipeline-23P31A4411/pkg/enums"
)

const registrationWindowYears = 2

// Customers produces up to n customer records. Candidates are deduplicated
// by email keeping the first occurrence, so the returned count may be below
// n. A zero count yields an empty collection; a negative count is rejected.
func (g *Generator) Customers(ctx context.Context, n int) ([]Customer, error) {
	if n < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer count must not be negative")
	}
	g.logg.Info(ctx, fmt.Sprintf("generating %d customers", n))

	now := time.Now()
	regStart := now.AddDate(-registrationWindowYears, 0, 0)
	ageGroups := enums.AgeGroups()

	candidates := make([]Customer, 0, n)
	for i := 0; i < n; i++ {
		first := g.fake.firstName()
		last := g.fake.lastName()
		candidates = append(candidates, Customer{
			CustomerID:       identity.Customer(i),
			FirstName:        first,
			LastName:         last,
			Email:            g.fake.email(first, last),
			Phone:            g.fake.phone(),
			RegistrationDate: g.fake.dateBetween(regStart, now).Format("2006-01-02"),
			City:             g.fake.city(),
			State:            g.fake.state(),
			Country:          "India",
			AgeGroup:         ageGroups[g.rng.Intn(len(ageGroups))],
		})
	}

	customers := dedupeByEmail(candidates)
	if dropped := len(candidates) - len(customers); dropped > 0 {
		g.logg.Warn(ctx, fmt.Sprintf("dropped %d customers with duplicate emails", dropped))
	}
	g.logg.Info(ctx, fmt.Sprintf("generated %d unique customers", len(customers)))
	return customers, nil
}

func dedupeByEmail(candidates []Customer) []Customer {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Customer, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Email]; ok {
			continue
		}
		seen[c.Email] = struct{}{}
		out = append(out, c)
	}
	return out
}
