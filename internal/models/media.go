package models

type Movie struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type MovieList struct {
	Movies []Movie `json:"movies"`
}
