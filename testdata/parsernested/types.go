package parsernested

type Leaf struct {
	Value string
}

type Child struct {
	Leaf Leaf
}

type Children []Child

type Page[T any] struct {
	Items []T
	Total int
}

type Root struct {
	Child     Child
	ChildPtr  *Child
	ChildList []Child
	Named     Children
	Page      Page[Leaf]
	Self      *Root
}

type NotStruct int

type Tree []Tree

type Forest []*Forest

type Holder struct {
	Trees  Tree
	Forest Forest
	Count  int
}
