package dup

type Twice struct {
	A int `csv:"0"`
	B int `csv:"0"`
}

type Malformed struct {
	C int `csv:"first"`
}

type Negative struct {
	D int `csv:"-2"`
}
