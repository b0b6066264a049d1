package entity

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// PageTreeNode is one entry of the sidebar tree.
type PageTreeNode struct {
	Page     *Page
	Children []*PageTreeNode
}
