package entities

import (
	"fmt"
	"math/rand"
)

// MinotaurNames are the names minotaurs are spawned with
var MinotaurNames = []string{
	"Ἀστερίων",
	"Μίνως",
	"Σαρπηδών",
	"Ῥαδάμανθυς",
	"Ἀμφιτρύων",
	"Πτερέλαος",
	"Τάφος",
}

// RandomMinotaurName picks one of MinotaurNames
func RandomMinotaurName(rng *rand.Rand) string {
	return MinotaurNames[rng.Intn(len(MinotaurNames))]
}

// PlayerName turns a login name into a display name: at most eight runes
// followed by a three digit tag, e.g. "theseus#042"
func PlayerName(rng *rand.Rand, name string) string {
	runes := []rune(name)
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return fmt.Sprintf("%s#%03d", string(runes), rng.Intn(1000))
}
