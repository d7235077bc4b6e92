package construct

// ============================================================
// Prompter port
// ============================================================

// Message keys used as prompt titles and labels. Frontends localize them.
const (
	MsgAngleTitle  = "dialog_angle_title"
	MsgAnglePrompt = "dialog_angle_prompt"
	MsgTextTitle   = "dialog_text_title"
	MsgTextPrompt  = "dialog_text_prompt"
)

// NumberPrompt asks for a number in [Min, Max].
type NumberPrompt struct {
	Title   string
	Prompt  string
	Default float64
	Min     float64
	Max     float64
}

// TextPrompt asks for a free-form string.
type TextPrompt struct {
	Title  string
	Prompt string
}

// Prompter collects a value from the user. The reply callback receives
// ok=false when the user cancels. Implementations may reply before the
// Ask call returns or at any later point on the event goroutine.
type Prompter interface {
	AskNumber(p NumberPrompt, reply func(value float64, ok bool))
	AskText(p TextPrompt, reply func(value string, ok bool))
}

// AnglePrompt is the prompt shown when an angle needs its magnitude.
var AnglePrompt = NumberPrompt{
	Title:   MsgAngleTitle,
	Prompt:  MsgAnglePrompt,
	Default: 90,
	Min:     -360,
	Max:     360,
}

// TextLabelPrompt is the prompt shown by the text tool.
var TextLabelPrompt = TextPrompt{
	Title:  MsgTextTitle,
	Prompt: MsgTextPrompt,
}

// Scripted answers prompts from fixed values. A nil field cancels.
type Scripted struct {
	Number *float64
	Text   *string
}

func (s Scripted) AskNumber(_ NumberPrompt, reply func(float64, bool)) {
	if s.Number == nil {
		reply(0, false)
		return
	}
	reply(*s.Number, true)
}

func (s Scripted) AskText(_ TextPrompt, reply func(string, bool)) {
	if s.Text == nil {
		reply("", false)
		return
	}
	reply(*s.Text, true)
}
