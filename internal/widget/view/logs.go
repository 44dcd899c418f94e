package view

import (
	"takosu/internal/shared"
)

// MessageLog renders chat messages into a scrolling container.
type MessageLog struct {
	box *Container
}

func NewMessageLog(box *Container) *MessageLog {
	return &MessageLog{box: box}
}

func (l *MessageLog) Render(m shared.MessageRecord) error {
	frag, err := RenderMessage(m)
	if err != nil {
		return err
	}
	l.box.Append(frag)
	l.box.ScrollToBottom()
	return nil
}

// CommentLog renders comments into a scrolling container.
type CommentLog struct {
	box *Container
}

func NewCommentLog(box *Container) *CommentLog {
	return &CommentLog{box: box}
}

func (l *CommentLog) Render(c shared.CommentRecord) error {
	frag, err := RenderComment(c)
	if err != nil {
		return err
	}
	l.box.Append(frag)
	l.box.ScrollToBottom()
	return nil
}

// Grid shows search results or the empty state.
type Grid struct {
	box *Container
}

func NewGrid(box *Container) *Grid {
	return &Grid{box: box}
}

func (g *Grid) ShowResults(items []shared.AnimeSummary) error {
	g.box.Clear()
	for _, item := range items {
		frag, err := RenderCard(item)
		if err != nil {
			return err
		}
		g.box.Append(frag)
	}
	return nil
}

func (g *Grid) ShowEmpty(query string) error {
	g.box.Clear()
	frag, err := RenderEmptyState(query)
	if err != nil {
		return err
	}
	g.box.Append(frag)
	return nil
}

func (g *Grid) Clear() {
	g.box.Clear()
}
