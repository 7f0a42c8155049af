// Package textedit applies a batch of edits from one change notification
// to a text snapshot.
package textedit

import (
	"fmt"
	"strings"

	"docsync/internal/textpos"
)

// ErrMalformedEdit is returned when a batch violates the edit contract:
// an inverted range, or ranges that overlap or arrive out of order.
var ErrMalformedEdit = fmt.Errorf("malformed edit")

// Edit is a single requested mutation. A nil Range means the whole
// document is replaced by NewText.
type Edit struct {
	Range   *textpos.Range
	NewText string
}

type span struct {
	start, end int
}

// Apply produces the text resulting from applying edits to text.
//
// Every range is resolved against text as it was before the batch, never
// against the output of an earlier edit in the same batch: the protocol
// delivers a set of non-overlapping patches to the pre-batch document,
// not a sequential replay. Edits must be ordered by start offset and must
// not overlap; a batch violating that fails whole with ErrMalformedEdit
// rather than guessing.
//
// If any edit in the batch is a full replacement the result is that
// edit's NewText and every other edit is ignored. A batch mixing both
// kinds is a protocol ambiguity; full replacement wins here. When several
// full replacements appear, the last one is taken.
func Apply(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	for i := len(edits) - 1; i >= 0; i-- {
		if edits[i].Range == nil {
			return edits[i].NewText, nil
		}
	}

	spans := make([]span, len(edits))
	for i, edit := range edits {
		spans[i] = span{
			start: textpos.Offset(text, edit.Range.Start),
			end:   textpos.Offset(text, edit.Range.End),
		}
	}
	if err := validate(spans); err != nil {
		return "", err
	}

	size := len(text)
	for _, edit := range edits {
		size += len(edit.NewText)
	}

	var b strings.Builder
	b.Grow(size)
	cursor := 0
	for i, edit := range edits {
		b.WriteString(text[cursor:spans[i].start])
		b.WriteString(edit.NewText)
		cursor = spans[i].end
	}
	b.WriteString(text[cursor:])

	return b.String(), nil
}

// validate checks the resolved spans for inverted ranges and for
// out-of-order or overlapping batches.
func validate(spans []span) error {
	for i, s := range spans {
		if s.start > s.end {
			return fmt.Errorf("%w: edit %d has inverted range [%d, %d)",
				ErrMalformedEdit, i, s.start, s.end)
		}
		if i > 0 && s.start < spans[i-1].end {
			return fmt.Errorf("%w: edit %d at offset %d overlaps previous edit ending at %d",
				ErrMalformedEdit, i, s.start, spans[i-1].end)
		}
	}
	return nil
}
