package vo

import "time"

type AbstractSubmission struct {
	ID             string    `json:"id"`
	EventCode      string    `json:"event_code"`
	AbstractNo     string    `json:"abstract_no"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	PresenterName  string    `json:"presenter_name"`
	PresenterEmail string    `json:"presenter_email"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
