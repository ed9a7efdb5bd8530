package domain

import "time"

type Abstract struct {
	ID             string
	EventCode      string
	AbstractNo     string
	Title          string
	Category       string
	PresenterName  string
	PresenterEmail string
	Status         string
	CreatedAt      time.Time
}
