package entities

// Lottery is one entry of the lottery catalog served by the upstream API.
type Lottery struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// FindLotteryByID returns the catalog entry with the given id, or nil.
func FindLotteryByID(catalog []Lottery, id int64) *Lottery {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// FindLotteryByAbbreviation returns the catalog entry with the given
// abbreviation, or nil. Used by the order-reuse flow, which only has
// abbreviations to go on.
func FindLotteryByAbbreviation(catalog []Lottery, abbreviation string) *Lottery {
	for i := range catalog {
		if catalog[i].Abbreviation == abbreviation {
			return &catalog[i]
		}
	}
	return nil
}
