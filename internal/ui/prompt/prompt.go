// internal/ui/prompt/prompt.go
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/dandelion/internal/ui/style"
)

// ErrAborted is returned when the operator leaves a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New("aborted by user")

// inputModel is a single-line question answered with Enter. An empty answer
// takes the default value.
type inputModel struct {
	label     string
	def       string
	validate  func(string) error
	input     textinput.Model
	styles    style.Styles
	err       error
	value     string
	done      bool
	cancelled bool
}

func newInputModel(label, def string, validate func(string) error, styles style.Styles) inputModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Width = 30
	ti.Prompt = "> "
	ti.Focus()

	return inputModel{
		label:    label,
		def:      def,
		validate: validate,
		input:    ti,
		styles:   styles,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := m.input.Value()
			if value == "" {
				value = m.def
			}
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", m.styles.Prompt.Render(m.label), m.value)
	}
	view := fmt.Sprintf("%s %s\n%s\n", m.styles.Prompt.Render(m.label), m.styles.Muted.Render("["+m.def+"]"), m.input.View())
	if m.err != nil {
		view += m.styles.Error.Render(m.err.Error()) + "\n"
	}
	return view
}

// Prompter asks the operator for the run parameters.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles style.Styles
}

// New creates a prompter on the given terminal streams.
func New(in io.Reader, out io.Writer, styles style.Styles) *Prompter {
	return &Prompter{in: in, out: out, styles: styles}
}

// Ask shows one question and returns the validated answer.
func (p *Prompter) Ask(label, def string, validate func(string) error) (string, error) {
	program := tea.NewProgram(
		newInputModel(label, def, validate, p.styles),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(inputModel)
	if !ok || m.cancelled || !m.done {
		return "", ErrAborted
	}
	return m.value, nil
}

// Select asks for token, recipient count, amount and batch size, offering
// defaults as the suggested answers.
func (p *Prompter) Select(tokenCount int, defaults Selection) (Selection, error) {
	var sel Selection

	answer, err := p.Ask(fmt.Sprintf("Select token (1-%d):", tokenCount), strconv.Itoa(defaults.TokenIndex), func(s string) error {
		_, err := ParseTokenIndex(s, tokenCount)
		return err
	})
	if err != nil {
		return Selection{}, err
	}
	sel.TokenIndex, _ = ParseTokenIndex(answer, tokenCount)

	answer, err = p.Ask("Number of recipients:", strconv.Itoa(defaults.Recipients), func(s string) error {
		_, err := ParseRecipients(s)
		return err
	})
	if err != nil {
		return Selection{}, err
	}
	sel.Recipients, _ = ParseRecipients(answer)

	answer, err = p.Ask("Tokens per recipient:", defaults.TokensPerRecipient.String(), func(s string) error {
		_, err := ParseAmount(s)
		return err
	})
	if err != nil {
		return Selection{}, err
	}
	sel.TokensPerRecipient, _ = ParseAmount(answer)

	answer, err = p.Ask("Recipients per transaction (1-10):", strconv.Itoa(defaults.RecipientsPerTx), func(s string) error {
		_, err := ParseBatchSize(s)
		return err
	})
	if err != nil {
		return Selection{}, err
	}
	sel.RecipientsPerTx, _ = ParseBatchSize(answer)

	return sel, nil
}

// Confirm asks a yes/no question. Anything but yes is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question+" (y/N)", "n", nil)
	if err != nil {
		return false, err
	}
	return ParseConfirm(answer), nil
}

