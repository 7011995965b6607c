package models

// HeroCard is one catalog entry. Powerstat ratings are 0-100 as imported
// from the superhero dataset.
type HeroCard struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	Intelligence int    `json:"intelligence"`
	Strength     int    `json:"strength"`
	Speed        int    `json:"speed"`
	Durability   int    `json:"durability"`
	Power        int    `json:"power"`
	Combat       int    `json:"combat"`
	Img          string `json:"img"`
}
