package models

import "strconv"

// Establishment represents a partner venue stored in the platform's own
// spatial database, with its linked provider place id when one exists.
type Establishment struct {
	ID                int64
	PlaceID           *string
	Nome              string
	Descricao         string
	EnderecoFormatado string
	Latitude          float64
	Longitude         float64
	Parceiro          bool
}

// DedupKey returns the identity used to merge an establishment with provider
// results: the linked place id when present, otherwise a synthesized local key.
func (e Establishment) DedupKey() string {
	if e.PlaceID != nil && *e.PlaceID != "" {
		return *e.PlaceID
	}
	return "local-" + strconv.FormatInt(e.ID, 10)
}

// Pin is a single renderable map marker merging partner and provider data.
// ID is nil for pins sourced from the provider.
type Pin struct {
	ID        *int64  `json:"id"`
	PlaceID   string  `json:"placeId"`
	Nome      string  `json:"nome"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	IsPartner bool    `json:"isPartner"`
	Snippet   string  `json:"snippet"`
	Endereco  string  `json:"endereco"`
}
