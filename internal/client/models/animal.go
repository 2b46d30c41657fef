package models

// Animal is one selectable patient in the clinic's catalog.
type Animal struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
}

// Appointment is a scheduled visit. AnimalID links it to a catalog entry.
type Appointment struct {
	ID       int64  `json:"id"`
	AnimalID int64  `json:"animal_id"`
	Date     string `json:"date"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

// DietLog is one feeding-plan record for an animal.
type DietLog struct {
	ID       int64  `json:"id"`
	AnimalID int64  `json:"animal_id"`
	Food     string `json:"food"`
	Amount   string `json:"amount"`
	Schedule string `json:"schedule"`
}
