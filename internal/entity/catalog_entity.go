package entity

type BlockTypeInfo struct {
	Type        BlockType
	Label       string
	Description string
}

// BlockCatalog is what the slash menu offers.
var BlockCatalog = []BlockTypeInfo{
	{BlockTypeText, "Text", "Just start writing with plain text."},
	{BlockTypeHeading1, "Heading 1", "Big section heading."},
	{BlockTypeHeading2, "Heading 2", "Medium section heading."},
	{BlockTypeHeading3, "Heading 3", "Small section heading."},
	{BlockTypeBulletList, "Bullet List", "Create a simple bulleted list."},
	{BlockTypeNumberedList, "Numbered List", "Create a numbered list."},
	{BlockTypeTodo, "To-do List", "Track tasks with a to-do list."},
	{BlockTypeQuote, "Quote", "Capture a quote."},
	{BlockTypeCode, "Code", "Capture a code snippet."},
	{BlockTypeCallout, "Callout", "Make writing stand out."},
	{BlockTypeDivider, "Divider", "Visually divide blocks."},
	{BlockTypeImage, "Image", "Embed an image by URL."},
}

type PageColor struct {
	Name  string
	Value string
}

var PageColors = []PageColor{
	{"Default", ""},
	{"Red", "red"},
	{"Orange", "orange"},
	{"Yellow", "yellow"},
	{"Green", "green"},
	{"Blue", "blue"},
	{"Purple", "purple"},
	{"Pink", "pink"},
	{"Gray", "gray"},
}

func ValidPageColor(value string) bool {
	for _, c := range PageColors {
		if c.Value == value {
			return true
		}
	}
	return false
}

type PaletteCommandKind string

const (
	PaletteCreatePage PaletteCommandKind = "create"
	PaletteNavigate   PaletteCommandKind = "navigate"
)

type PaletteCommand struct {
	Id          string
	Kind        PaletteCommandKind
	Title       string
	Description string
	Group       string
	PageId      string
}
