package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gxrwes/CS2QuickSetup/internal/defaults"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// ErrCancelled is returned when the user leaves a prompt without choosing
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	disabledItemStyle = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("241"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	name     string
	params   string
	index    int
	disabled bool
}

func (i item) FilterValue() string {
	return i.name
}

func (i item) Title() string {
	title := i.name
	if i.params != "" {
		title += fmt.Sprintf(" [%s]", i.params)
	}
	if i.disabled {
		title += " (disabled)"
	}
	return title
}

func (i item) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choice   int
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.choice = -1
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				m.choice = i.index
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • /: filter • enter: select • q/ctrl+c: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newSelector(commands []types.Command) selectorModel {
	items := make([]list.Item, 0, len(commands))
	for i, c := range commands {
		items = append(items, item{
			name:     c.Name,
			params:   strings.Join(c.Parameters, ";"),
			index:    i,
			disabled: !c.IsEnabled(),
		})
	}

	const defaultWidth = 80
	const listHeight = 14

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Select a command to edit"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return selectorModel{list: l, choice: -1}
}

// promptForCommand shows an interactive list and returns the chosen command index
func promptForCommand(commands []types.Command) (int, error) {
	if len(commands) == 0 {
		return -1, fmt.Errorf("no commands to edit")
	}

	p := tea.NewProgram(newSelector(commands))
	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice < 0 {
		return -1, ErrCancelled
	}
	return result.choice, nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if i.disabled {
		fn = disabledItemStyle.Render
	}
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// EditOptions controls the interactive parameter editor
type EditOptions struct {
	Sources
	SetupPath string // setup file receiving the edited command
	Name      string // command to edit; empty shows a selector

	In  io.Reader
	Out io.Writer
}

// Edit prompts for a new parameter string and stores the command in the setup file
// The parameter string is split on ';' the same way as --param
func Edit(opts EditOptions) (types.Command, error) {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out, _ := writers(opts.Out, nil)

	cfg, err := LoadConfig(opts.Sources)
	if err != nil {
		return types.Command{}, err
	}

	var cmd *types.Command
	if opts.Name != "" {
		cmd = findCommand(cfg, opts.Name)
		if cmd == nil {
			return types.Command{}, fmt.Errorf("no command named %q", opts.Name)
		}
	} else {
		idx, err := promptForCommand(cfg.Commands)
		if err != nil {
			return types.Command{}, err
		}
		cmd = &cfg.Commands[idx]
	}

	fmt.Fprintf(out, "%s\n  template: %s\n", cmd.Name, strings.ReplaceAll(cmd.CommandBase, "\n", "\\n"))
	for i, desc := range cmd.ParameterDescription {
		fmt.Fprintf(out, "  {%d} %s\n", i, desc)
	}
	fmt.Fprintf(out, "Parameters [%s]: ", strings.Join(cmd.Parameters, ";"))

	value, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return types.Command{}, fmt.Errorf("failed to read input: %w", err)
	}
	if value = strings.TrimSpace(value); value != "" {
		_, params, err := ParseParam(cmd.Name + "=" + value)
		if err != nil {
			return types.Command{}, err
		}
		cmd.Parameters = params
	}

	setup := &types.GeneratedConfig{}
	if _, err := os.Stat(opts.SetupPath); err == nil {
		if setup, err = defaults.LoadSetup(opts.SetupPath); err != nil {
			return types.Command{}, err
		}
	}
	setCommand(setup, *cmd)

	if err := defaults.Save(opts.SetupPath, setup); err != nil {
		return types.Command{}, err
	}

	fmt.Fprintf(out, "Saved %s to %s\n", cmd.Name, opts.SetupPath)
	return *cmd, nil
}
