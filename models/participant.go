package models

// Participant is an opaque competitor: a solo player or a team. The
// engine never looks past the ID/Name pair except for Seed, which is
// only consulted at bracket generation time.
type Participant struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`

	// Seed is a positive strength ranking, lower = stronger.
	// Zero means unseeded.
	Seed int `json:"seed,omitempty"`
}
