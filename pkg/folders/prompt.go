package folders

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// PromptConfirmer reads the answer from the terminal. Only an explicit "n"
// declines; an empty answer accepts the default.
type PromptConfirmer struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (c PromptConfirmer) Confirm(question string) (bool, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}",
		Valid:   "{{ . }}",
		Success: "{{ . }}",
		Invalid: "{{ . }}",
	}
	prompt := promptui.Prompt{
		Label:     question,
		Templates: templates,
		Stdin:     c.Stdin,
		Stdout:    c.Stdout,
	}
	answer, err := prompt.Run()
	if err != nil {
		return false, err
	}
	return !Declined(answer), nil
}

// Declined reports whether answer refuses the question.
func Declined(answer string) bool {
	return strings.ToLower(answer) == declineAnswer
}
