package students

import (
	"time"

	"github.com/jonwraymond/studentops/apiclient"
)

// Student is a full record from the detailed listing.
type Student struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Created is the result of a successful Create.
type Created struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Roster is the result of Details.
type Roster struct {
	Students []Student `json:"students"`
	Count    int       `json:"count"`
}

// The API renders timestamps with Python's isoformat, without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(v apiclient.Value, name string) time.Time {
	s, err := v.StringField(name)
	if err != nil {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func decodeStudent(v apiclient.Value) (Student, error) {
	name, err := v.StringField("name")
	if err != nil {
		return Student{}, err
	}
	ageField, err := v.Require("age")
	if err != nil {
		return Student{}, err
	}
	age, err := ageField.AsInt()
	if err != nil {
		return Student{}, err
	}

	s := Student{
		Name:      name,
		Age:       age,
		CreatedAt: parseTimestamp(v, "created_at"),
		UpdatedAt: parseTimestamp(v, "updated_at"),
	}
	if idField, ok := v.Field("id"); ok {
		if id, err := idField.AsInt(); err == nil {
			s.ID = id
		}
	}
	return s, nil
}
