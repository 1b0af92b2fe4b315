package model

import "time"

// Court belongs to a club. DefaultPriceCents is the hourly rate charged
// for any part of a day no price rule covers.
type Court struct {
	ID                string
	ClubID            string
	Name              string
	Surface           string
	Indoor            bool
	DefaultPriceCents int
	Timezone          string // IANA name, e.g. "Europe/Warsaw"
	CreatedAt         time.Time
}
