package domain

import "time"

// BuildInfo records how a target was last built.
type BuildInfo struct {
	Target     string    `json:"target,omitzero"`
	RecipeHash string    `json:"recipe_hash,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
