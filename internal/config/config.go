package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable: strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Port           string   // HTTP port to listen on
	BaseURL        string   // externally reachable base URL, used in verification links
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign JWTs
	AccessTTLMin   int      // access token time-to-live in minutes
	RefreshTTLDays int      // refresh token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	OrganizerEmail []string // allow-list of emails permitted to register as organizers
	TemplatesDir   string   // local directory scanned for background images
	FontsDir       string   // directory of .ttf files used by the raster pipeline
	GCSBucket      string   // cloud bucket for background images (empty disables)
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
//
// The organizer allow-list replaces the single hardcoded admin email
// of earlier deployments: ORGANIZER_EMAILS is a comma-separated list
// and at least one entry is required.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		BaseURL:        strings.TrimRight(must("APP_BASE_URL"), "/"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		OrganizerEmail: mustEmails("ORGANIZER_EMAILS"),
		TemplatesDir:   getenv("TEMPLATES_DIR", "public/templates"),
		FontsDir:       getenv("FONTS_DIR", "fonts"),
		GCSBucket:      os.Getenv("GCS_BUCKET"), // empty disables cloud listing
	}
}

// OrganizerAllowed reports whether an email may register an organizer
// account. Comparison is case-insensitive.
func (c Config) OrganizerAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.OrganizerEmail {
		if e == email {
			return true
		}
	}
	return false
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustEmails parses a required comma-separated email list, lowering
// and trimming each entry.
func mustEmails(key string) []string {
	raw := must(key)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		log.Fatalf("no valid entries in %s", key)
	}
	return out
}
