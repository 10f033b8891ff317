package document

// PlayerIdentity is the civil servant the player controls.
type PlayerIdentity struct {
	Name       string `json:"name"`
	Rank       string `json:"rank"`
	RRNFront   string `json:"rrn_front"`
	RRNBack    string `json:"-"`
	Department string `json:"department"`
	CardNumber string `json:"card_number"`
}

// Player is fixed for every session.
var Player = PlayerIdentity{
	Name:       "김공무",
	Rank:       "7급 주무관",
	RRNFront:   "920315",
	RRNBack:    "1847291",
	Department: "종합민원실",
	CardNumber: "2024-007293",
}

// IsPlayer reports whether name and id front identify the player.
// Both must match exactly.
func IsPlayer(name, rrnFront string) bool {
	return name == Player.Name && rrnFront == Player.RRNFront
}
