package pandoc

// Constructors for the elements produced by the Markdown front end.

// Para is a paragraph.
func Para(inlines ...Element) Element {
	return Element{Type: TypePara, Content: encode(blocksOrEmpty(inlines))}
}

// Plain is a run of inlines not wrapped in a paragraph (tight list items).
func Plain(inlines ...Element) Element {
	return Element{Type: TypePlain, Content: encode(blocksOrEmpty(inlines))}
}

// Header is a heading of the given level.
func Header(level int, attr Attr, inlines ...Element) Element {
	return Element{Type: TypeHeader, Content: tuple(level, attr, blocksOrEmpty(inlines))}
}

// CodeBlock is a literal block of code.
func CodeBlock(attr Attr, text string) Element {
	return Element{Type: TypeCodeBlock, Content: tuple(attr, text)}
}

// BlockQuote wraps blocks in a quotation.
func BlockQuote(blocks ...Element) Element {
	return Element{Type: TypeBlockQuote, Content: encode(blocksOrEmpty(blocks))}
}

// BulletList is an unordered list; each item is a list of blocks.
func BulletList(items ...[]Element) Element {
	return Element{Type: TypeBulletList, Content: encode(listItems(items))}
}

// ListDelim is the punctuation after an ordered list number.
type ListDelim string

const (
	DelimPeriod   ListDelim = "Period"
	DelimOneParen ListDelim = "OneParen"
)

// ListDelimFor maps a Markdown list marker ('.' or ')') to its delimiter.
func ListDelimFor(marker byte) ListDelim {
	if marker == ')' {
		return DelimOneParen
	}
	return DelimPeriod
}

// OrderedList is a decimal list starting at start.
func OrderedList(start int, delim ListDelim, items ...[]Element) Element {
	if delim == "" {
		delim = DelimPeriod
	}
	attrs := tuple(start, Element{Type: "Decimal"}, Element{Type: string(delim)})
	return Element{Type: TypeOrderedList, Content: tuple(attrs, listItems(items))}
}

// HorizontalRule is a thematic break.
func HorizontalRule() Element {
	return Element{Type: TypeHorizontalRule}
}

// Str is a run of non-space text.
func Str(text string) Element {
	return Element{Type: TypeStr, Content: encode(text)}
}

// Space is inter-word space.
func Space() Element { return Element{Type: TypeSpace} }

// SoftBreak is a newline inside a paragraph.
func SoftBreak() Element { return Element{Type: TypeSoftBreak} }

// LineBreak is a hard line break.
func LineBreak() Element { return Element{Type: TypeLineBreak} }

// Emph is emphasized text.
func Emph(inlines ...Element) Element {
	return Element{Type: TypeEmph, Content: encode(blocksOrEmpty(inlines))}
}

// Strong is strongly emphasized text.
func Strong(inlines ...Element) Element {
	return Element{Type: TypeStrong, Content: encode(blocksOrEmpty(inlines))}
}

// Strikeout is struck out text.
func Strikeout(inlines ...Element) Element {
	return Element{Type: TypeStrikeout, Content: encode(blocksOrEmpty(inlines))}
}

// Code is inline code.
func Code(attr Attr, text string) Element {
	return Element{Type: TypeCode, Content: tuple(attr, text)}
}

// Link is a hyperlink with its link text.
func Link(attr Attr, inlines []Element, url, title string) Element {
	return Element{Type: TypeLink, Content: tuple(attr, blocksOrEmpty(inlines), []string{url, title})}
}

// Image is an image with its alt text.
func Image(attr Attr, inlines []Element, url, title string) Element {
	return Element{Type: TypeImage, Content: tuple(attr, blocksOrEmpty(inlines), []string{url, title})}
}

// RawInline is inline output passed through to the writer of the named format.
func RawInline(format, text string) Element {
	return Element{Type: TypeRawInline, Content: tuple(format, text)}
}

func listItems(items [][]Element) [][]Element {
	out := make([][]Element, 0, len(items))
	for _, item := range items {
		out = append(out, blocksOrEmpty(item))
	}
	return out
}
