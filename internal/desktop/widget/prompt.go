package widget

import (
	"strconv"
	"strings"

	"geoboard/internal/construct"
)

// ============================================================
// Prompt box
// ============================================================

const (
	promptWidth  = 360
	promptHeight = 150
)

// PromptBox is the in-canvas modal that answers construction prompts. Ask
// calls return at once; the reply fires later from Submit or Cancel on the
// frame loop.
type PromptBox struct {
	Field Field
	// Title and Prompt are message keys.
	Title   string
	Prompt  string
	Invalid bool

	number      construct.NumberPrompt
	replyNumber func(float64, bool)
	replyText   func(string, bool)
}

var _ construct.Prompter = (*PromptBox)(nil)

func (b *PromptBox) Visible() bool {
	return b.replyNumber != nil || b.replyText != nil
}

// AskNumber opens the box with the default value filled in. An open
// prompt is cancelled first.
func (b *PromptBox) AskNumber(p construct.NumberPrompt, reply func(float64, bool)) {
	b.Cancel()
	b.open(p.Title, p.Prompt)
	b.number = p
	b.replyNumber = reply
	b.Field.Set(strconv.FormatFloat(p.Default, 'g', -1, 64))
}

func (b *PromptBox) AskText(p construct.TextPrompt, reply func(string, bool)) {
	b.Cancel()
	b.open(p.Title, p.Prompt)
	b.replyText = reply
}

func (b *PromptBox) open(title, prompt string) {
	b.Title = title
	b.Prompt = prompt
	b.Invalid = false
	b.Field.Clear()
	b.Field.Focused = true
}

// Submit answers the open prompt with the field contents. A number that
// does not parse or lies outside the prompt range keeps the box open and
// marks it invalid.
func (b *PromptBox) Submit() bool {
	switch {
	case b.replyNumber != nil:
		text := strings.ReplaceAll(strings.TrimSpace(b.Field.Text()), ",", ".")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v < b.number.Min || v > b.number.Max {
			b.Invalid = true
			return false
		}
		reply := b.replyNumber
		b.close()
		reply(v, true)
		return true
	case b.replyText != nil:
		reply := b.replyText
		text := b.Field.Text()
		b.close()
		reply(text, true)
		return true
	}
	return false
}

// Cancel closes the box and replies with ok=false.
func (b *PromptBox) Cancel() {
	replyNumber, replyText := b.replyNumber, b.replyText
	b.close()
	if replyNumber != nil {
		replyNumber(0, false)
	}
	if replyText != nil {
		replyText("", false)
	}
}

func (b *PromptBox) close() {
	b.replyNumber = nil
	b.replyText = nil
	b.Invalid = false
	b.Field.Focused = false
	b.Field.Clear()
}

// PromptLayout holds the rects of an open prompt box.
type PromptLayout struct {
	Box    Rect
	Input  Rect
	OK     Rect
	Cancel Rect
}

// Layout centers the box inside area.
func (b *PromptBox) Layout(area Rect) PromptLayout {
	box := Rect{
		X: area.X + (area.W-promptWidth)/2,
		Y: area.Y + (area.H-promptHeight)/2,
		W: promptWidth,
		H: promptHeight,
	}
	inner := box.W - 4*padding
	btnW := (inner - padding) / 2
	btnY := box.Y + box.H - 2*padding - buttonHeight
	return PromptLayout{
		Box:    box,
		Input:  Rect{X: box.X + 2*padding, Y: box.Y + 56, W: inner, H: buttonHeight},
		OK:     Rect{X: box.X + 2*padding, Y: btnY, W: btnW, H: buttonHeight},
		Cancel: Rect{X: box.X + 2*padding + btnW + padding, Y: btnY, W: btnW, H: buttonHeight},
	}
}
