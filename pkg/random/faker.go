package random

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownFaker is returned for a faker name that has no generator.
var ErrUnknownFaker = errors.New("unknown faker")

var (
	fakerFirstNames = []string{"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona"}
	fakerLastNames  = []string{"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson"}
	fakerDomains    = []string{"example.com", "test.com", "mock.io", "demo.org"}
	fakerStreets    = []string{"Main St", "Oak Ave", "Elm St", "Park Blvd", "Cedar Ln", "Maple Dr", "Pine Rd", "Lake Way"}
	fakerCities     = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle", "Denver", "Boston"}
	fakerStates     = []string{"NY", "CA", "IL", "TX", "AZ", "WA", "CO", "MA"}
	fakerCompanies  = []string{"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp", "Stark Industries", "Wayne Enterprises", "Cyberdyne Systems", "Tyrell Corp"}
	fakerWords      = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta", "lambda", "sigma", "omega"}
	fakerSentences  = []string{
		"The quick brown fox jumps over the lazy dog.",
		"Lorem ipsum dolor sit amet.",
		"Fixture data generated for testing.",
		"Records are produced in declaration order.",
		"System status nominal.",
	}
	fakerUserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
	}
	fakerCurrencyCodes = []string{
		"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY",
		"SEK", "NZD", "MXN", "SGD", "HKD", "NOK", "KRW", "BRL",
	}
	fakerProductAdjectives = []string{"Rustic", "Elegant", "Handcrafted", "Sleek", "Practical", "Modern", "Vintage", "Ergonomic"}
	fakerProductMaterials  = []string{"Steel", "Wooden", "Granite", "Rubber", "Cotton", "Leather", "Bamboo", "Ceramic"}
	fakerProductNouns      = []string{"Chair", "Table", "Lamp", "Keyboard", "Mouse", "Backpack", "Watch", "Mug"}
	fakerColors            = []string{"Crimson", "Azure", "Emerald", "Ivory", "Coral", "Indigo", "Amber", "Teal"}
	fakerJobLevels         = []string{"Senior", "Junior", "Lead", "Principal", "Staff"}
	fakerJobFields         = []string{"Software", "Data", "Product", "Marketing", "Operations", "Security"}
	fakerJobRoles          = []string{"Engineer", "Analyst", "Manager", "Designer", "Architect", "Developer"}
	fakerMIMETypes         = []string{
		"application/json", "application/xml", "application/pdf", "text/html",
		"text/plain", "text/csv", "image/png", "image/jpeg", "video/mp4",
	}
)

type ibanPrefix struct {
	country    string
	length     int
	bankPrefix string
}

var fakerIBANPrefixes = []ibanPrefix{
	{"GB", 22, "WEST"},
	{"DE", 22, "DEUT"},
	{"FR", 27, "BNPA"},
	{"ES", 24, "BBVA"},
	{"NL", 18, "ABNA"},
}

var fakers = map[string]func(*Source) string{
	"name": func(s *Source) string {
		return Pick(s, fakerFirstNames) + " " + Pick(s, fakerLastNames)
	},
	"first_name": func(s *Source) string { return Pick(s, fakerFirstNames) },
	"last_name":  func(s *Source) string { return Pick(s, fakerLastNames) },
	"email": func(s *Source) string {
		return strings.ToLower(Pick(s, fakerFirstNames)) + strconv.Itoa(s.IntN(1000)) + "@" + Pick(s, fakerDomains)
	},
	"address": func(s *Source) string {
		idx := s.IntN(len(fakerCities))
		return fmt.Sprintf("%d %s, %s, %s %05d",
			s.IntN(9999)+1, Pick(s, fakerStreets), fakerCities[idx], fakerStates[idx], s.IntN(99999))
	},
	"city": func(s *Source) string { return Pick(s, fakerCities) },
	"phone": func(s *Source) string {
		return fmt.Sprintf("+1-%03d-%03d-%04d", s.IntN(900)+100, s.IntN(900)+100, s.IntN(10000))
	},
	"company":  func(s *Source) string { return Pick(s, fakerCompanies) },
	"word":     func(s *Source) string { return Pick(s, fakerWords) },
	"sentence": func(s *Source) string { return Pick(s, fakerSentences) },
	"ipv4": func(s *Source) string {
		return fmt.Sprintf("%d.%d.%d.%d", s.IntN(256), s.IntN(256), s.IntN(256), s.IntN(256))
	},
	"ipv6": func(s *Source) string {
		groups := make([]string, 8)
		for i := range groups {
			groups[i] = fmt.Sprintf("%04x", s.IntN(65536))
		}
		return strings.Join(groups, ":")
	},
	"mac_address": func(s *Source) string {
		return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
			s.IntN(256), s.IntN(256), s.IntN(256), s.IntN(256), s.IntN(256), s.IntN(256))
	},
	"user_agent":    func(s *Source) string { return Pick(s, fakerUserAgents) },
	"credit_card":   creditCard,
	"currency_code": func(s *Source) string { return Pick(s, fakerCurrencyCodes) },
	"iban":          iban,
	"price": func(s *Source) string {
		return fmt.Sprintf("%d.%02d", s.IntN(999)+1, s.IntN(100))
	},
	"product_name": func(s *Source) string {
		return Pick(s, fakerProductAdjectives) + " " + Pick(s, fakerProductMaterials) + " " + Pick(s, fakerProductNouns)
	},
	"color": func(s *Source) string { return Pick(s, fakerColors) },
	"ssn": func(s *Source) string {
		return fmt.Sprintf("%03d-%02d-%04d", s.IntN(899)+100, s.IntN(99)+1, s.IntN(9999)+1)
	},
	"job_title": func(s *Source) string {
		return Pick(s, fakerJobLevels) + " " + Pick(s, fakerJobFields) + " " + Pick(s, fakerJobRoles)
	},
	"mime_type": func(s *Source) string { return Pick(s, fakerMIMETypes) },
}

// Faker produces a sample value for the named faker.
func (s *Source) Faker(name string) (string, error) {
	fn, ok := fakers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFaker, name)
	}
	return fn(s), nil
}

// HasFaker reports whether name is a supported faker.
func HasFaker(name string) bool {
	_, ok := fakers[name]
	return ok
}

// FakerNames returns the supported faker names in sorted order.
func FakerNames() []string {
	names := make([]string, 0, len(fakers))
	for name := range fakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// creditCard generates a Luhn-valid 16-digit number with a Visa-like prefix.
func creditCard(s *Source) string {
	digits := make([]int, 16)
	digits[0] = 4
	for i := 1; i < 15; i++ {
		digits[i] = s.IntN(10)
	}

	// Double every digit at an even index (odd position from the right).
	sum := 0
	for i := 0; i < 15; i++ {
		d := digits[i]
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	digits[15] = (10 - sum%10) % 10

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}

func iban(s *Source) string {
	prefix := Pick(s, fakerIBANPrefixes)
	var sb strings.Builder
	sb.WriteString(prefix.country)
	fmt.Fprintf(&sb, "%02d", s.IntN(90)+10)
	sb.WriteString(prefix.bankPrefix)
	remaining := prefix.length - len(prefix.country) - 2 - len(prefix.bankPrefix)
	for i := 0; i < remaining; i++ {
		sb.WriteByte(byte('0' + s.IntN(10)))
	}
	return sb.String()
}
