package campaign

import (
	"time"

	"github.com/cory-johannsen/campaign/internal/game/character"
	"github.com/cory-johannsen/campaign/internal/game/combat"
	"github.com/cory-johannsen/campaign/internal/game/npc"
)

// Note is a free-text session note.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the full campaign as plain data. It holds no pointers into live
// objects and round-trips through JSON unchanged.
type State struct {
	Characters []*character.Character `json:"characters"`
	NPCs       []*npc.Template        `json:"npcs"`
	Encounters []combat.Snapshot      `json:"encounters"`
	Notes      []Note                 `json:"notes"`
}
