package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// The pools keep generation self-contained and reproducible: the same seed
// always walks the same sequence. Locale matches the generated market
// (country is fixed to India, payments include UPI and COD).

var firstNames = []string{
	"Aarav", "Ananya", "Aditya", "Diya", "Ishaan", "Kavya", "Arjun", "Meera",
	"Rohan", "Priya", "Kabir", "Sanya", "Dev", "Nisha", "Aryan", "Pooja",
	"Rahul", "Sneha", "Vikram", "Tara",
}

var lastNames = []string{
	"Sharma", "Verma", "Patel", "Reddy", "Nair", "Gupta", "Singh", "Iyer",
	"Das", "Khan", "Mehta", "Joshi", "Kulkarni", "Chopra", "Malhotra", "Rao",
	"Banerjee", "Mishra", "Pillai", "Saxena",
}

var cities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Chennai", "Kolkata", "Pune",
	"Ahmedabad", "Jaipur", "Lucknow", "Surat", "Kanpur", "Nagpur", "Indore",
	"Bhopal",
}

var states = []string{
	"Maharashtra", "Karnataka", "Tamil Nadu", "West Bengal", "Gujarat",
	"Rajasthan", "Uttar Pradesh", "Telangana", "Kerala", "Madhya Pradesh",
	"Punjab", "Haryana",
}

var streetNames = []string{
	"MG Road", "Park Street", "Brigade Road", "Link Road", "Station Road",
	"Mall Road", "Church Street", "Hill Road", "Ring Road", "Lake View Road",
}

var productWords = []string{
	"Premium", "Classic", "Ultra", "Smart", "Mega", "Prime", "Royal", "Urban",
	"Active", "Fusion", "Aqua", "Zen", "Nova", "Vista", "Apex", "Orbit",
	"Pulse", "Swift", "Terra", "Volt",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "rediffmail.com",
}

type faker struct {
	rng *rand.Rand
}

func (f *faker) pick(pool []string) string {
	return pool[f.rng.Intn(len(pool))]
}

func (f *faker) firstName() string { return f.pick(firstNames) }
func (f *faker) lastName() string  { return f.pick(lastNames) }
func (f *faker) city() string      { return f.pick(cities) }
func (f *faker) state() string     { return f.pick(states) }
func (f *faker) word() string      { return f.pick(productWords) }

// email builds an address from the name parts plus a small numeric suffix.
// Collisions are possible and expected; the customer generator dedupes.
func (f *faker) email(first, last string) string {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(first), strings.ToLower(last), f.rng.Intn(100), f.pick(emailDomains))
}

func (f *faker) phone() string {
	return fmt.Sprintf("+91-%d", 7000000000+f.rng.Int63n(3000000000))
}

func (f *faker) streetAddress() string {
	return fmt.Sprintf("%d %s", f.rng.Intn(999)+1, f.pick(streetNames))
}

// dateBetween picks a day uniformly in [start, end], both inclusive.
func (f *faker) dateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, f.rng.Intn(days+1))
}

func (f *faker) timeOfDay() string {
	return fmt.Sprintf("%02d:%02d:%02d", f.rng.Intn(24), f.rng.Intn(60), f.rng.Intn(60))
}
