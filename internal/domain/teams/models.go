package teams

// Team is the normalized team shape embedded in players and games.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

// IsZero reports whether the team is unset. Free agents carry a zero team.
func (t Team) IsZero() bool {
	return t.ID == ""
}

// Label returns the short code when known, else the best available name.
func (t Team) Label() string {
	switch {
	case t.Abbreviation != "":
		return t.Abbreviation
	case t.FullName != "":
		return t.FullName
	default:
		return t.Name
	}
}
