package parserembed

type Base struct {
	ID   int
	Name string
}

type InnerA struct {
	Code string
}

type InnerB struct {
	Code string
}

type Audit struct {
	Version int    `json:"version"`
	Owner   string `json:"owner"`
}

type Meta struct {
	Owner string
}

type User struct {
	Base
	InnerA
	InnerB
	*Audit
	Meta
	Name   string
	Email  string
	hidden string
}

type Loop struct {
	*Loop
	Value int
}
