package models

import "strings"

// JobInput accepts the field spellings older clients still send. Canonical
// resolves them once so nothing downstream has to look at the aliases.
type JobInput struct {
	JobNumber string `json:"job_number"`

	Customer     string `json:"customer"`
	CustomerName string `json:"customer_name"`

	CustomerContact string `json:"customer_contact"`
	ContactName     string `json:"contact_name"`
	ContactPhone    string `json:"contact_phone"`

	Location    string `json:"location"`
	JobLocation string `json:"job_location"`
	Address     string `json:"address"`

	Description string `json:"description"`
	JobType     string `json:"job_type"`
}

// CanonicalJobFields is the resolved form of JobInput.
type CanonicalJobFields struct {
	JobNumber       string
	CustomerName    string
	CustomerContact string
	Location        string
	Description     string
}

func (in JobInput) Canonical() CanonicalJobFields {
	contact := firstNonEmpty(in.CustomerContact, in.ContactName)
	if phone := strings.TrimSpace(in.ContactPhone); phone != "" {
		if contact == "" {
			contact = phone
		} else if !strings.Contains(contact, phone) {
			contact = contact + " " + phone
		}
	}
	return CanonicalJobFields{
		JobNumber:       strings.TrimSpace(in.JobNumber),
		CustomerName:    firstNonEmpty(in.Customer, in.CustomerName),
		CustomerContact: contact,
		Location:        firstNonEmpty(in.Location, in.JobLocation, in.Address),
		Description:     firstNonEmpty(in.Description, in.JobType),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
