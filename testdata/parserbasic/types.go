package parserbasic

import "time"

type Profile struct {
	BirthAt time.Time `json:"birthAt" time_format:"2006-01-02"`
	Bio     string    `json:"bio,omitempty"`
}

type Status string

type User struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Active   bool              `json:"active"`
	Rating   *float64          `json:"rating"`
	Status   Status            `json:"status"`
	Profile  Profile           `json:"profile"`
	Ptr      *Profile          `json:"ptr"`
	Tags     []string          `json:"tags"`
	Avatar   []byte            `json:"avatar"`
	Scores   map[string]int    `json:"scores"`
	Extra    any               `json:"extra"`
	Password string            `json:"-"`
	Dash     string            `json:"-,"`
	Created  time.Time         `json:"created"`
	Window   [2]int            `json:"window"`
	Labels   map[string]string `json:"labels,omitempty"`
	hidden   string
}
