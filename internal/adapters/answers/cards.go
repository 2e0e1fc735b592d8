package answers

import (
	"encoding/json"
	"os"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// CardCatalog resolves card ids to display names from card-list.json.
// The file is read on every lookup: it is tiny and operators update it
// in place while the fleet runs.
type CardCatalog struct {
	path string
}

var _ ports.CardCatalog = (*CardCatalog)(nil)

func NewCardCatalog(path string) *CardCatalog {
	return &CardCatalog{path: path}
}

type cardEntry struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

func (c *CardCatalog) CardInfo(id string) (domain.CardInfo, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return domain.CardInfo{}, false
	}

	var cards map[string]cardEntry
	if err := json.Unmarshal(data, &cards); err != nil {
		return domain.CardInfo{}, false
	}

	entry, ok := cards[id]
	if !ok {
		return domain.CardInfo{}, false
	}
	return domain.CardInfo{Title: entry.Title, Description: entry.Desc}, true
}
