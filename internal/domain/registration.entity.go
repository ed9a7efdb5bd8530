package domain

import "time"

type Registration struct {
	ID             string
	EventCode      string
	RegistrationNo string
	FullName       string
	Email          string
	Phone          string
	Category       string
	CreatedAt      time.Time
}
