package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive page browser.
func (c *CLI) browseCommand() *cobra.Command {
	ops := make([]string, 0)
	for _, op := range librariesio.PagedOperations() {
		ops = append(ops, string(op))
	}

	cmd := &cobra.Command{
		Use:   "browse <operation> [args...]",
		Short: "Page through a paginated result interactively",
		Long: `Page through a paginated result interactively.

Pages are fetched on demand as you move forward and kept for moving back.

Operations:
  ` + strings.Join(ops, "\n  "),
		Example: `  quibraries browse project-dependents pypi requests
  quibraries browse user-repositories github octocat --per-page 50`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return ops, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op := librariesio.Operation(args[0])
			if !slices.Contains(ops, args[0]) {
				return errors.New(errors.ErrCodeInvalidArgument,
					"%q is not a paginated operation (see quibraries browse --help)", args[0])
			}
			params := positional(op)
			a, err := bindArgs(librariesio.Args{PerPage: c.cfg.PerPage}, params, args[1:])
			if err != nil {
				return err
			}

			client, err := c.newClient()
			if err != nil {
				return err
			}
			pager, err := client.Paginate(op, a)
			if err != nil {
				return err
			}

			title := strings.TrimSpace(string(op) + " " + strings.Join(args[1:], " "))
			model := newBrowseModel(cmd.Context(), pager, title)
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}
			return final.(browseModel).err
		},
	}
	return cmd
}

// =============================================================================
// browseModel - Interactive page browser
// =============================================================================

// pageMsg carries the result of one Pager.Next call.
type pageMsg struct {
	page librariesio.Page
	err  error
}

// browseModel is the bubbletea model for paging through a result set.
// At most one fetch is in flight at a time, so the Pager is never used
// concurrently.
type browseModel struct {
	ctx     context.Context
	pager   *librariesio.Pager
	title   string
	pages   []librariesio.Page
	index   int // page shown; -1 until the first page arrives
	offset  int // first row shown
	height  int
	loading bool
	done    bool
	err     error
}

func newBrowseModel(ctx context.Context, pager *librariesio.Pager, title string) browseModel {
	return browseModel{
		ctx:     ctx,
		pager:   pager,
		title:   title,
		index:   -1,
		height:  15,
		loading: true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetch()
}

func (m browseModel) fetch() tea.Cmd {
	ctx, pager := m.ctx, m.pager
	return func() tea.Msg {
		page, err := pager.Next(ctx)
		return pageMsg{page: page, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageMsg:
		m.loading = false
		switch {
		case msg.err == librariesio.Done:
			m.done = true
		case msg.err != nil:
			m.err = msg.err
			return m, tea.Quit
		default:
			m.pages = append(m.pages, msg.page)
			m.index = len(m.pages) - 1
			m.offset = 0
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "n", "l", " ":
			if m.loading {
				return m, nil
			}
			if m.index < len(m.pages)-1 {
				m.index++
				m.offset = 0
			} else if !m.done {
				m.loading = true
				return m, m.fetch()
			}
		case "left", "p", "h":
			if m.index > 0 {
				m.index--
				m.offset = 0
			}
		case "down", "j":
			if m.index >= 0 && m.offset+m.height < len(m.pages[m.index]) {
				m.offset++
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ page  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(listErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
		b.WriteString("\n")
		return b.String()
	case m.index < 0 && m.loading:
		b.WriteString(listDimStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	case m.index < 0:
		b.WriteString(listDimStyle.Render("No results"))
		b.WriteString("\n")
		return b.String()
	}

	page := m.pages[m.index]
	end := min(m.offset+m.height, len(page))
	b.WriteString(listTable(page[m.offset:end]))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  page %d/%d", m.index+1, len(m.pages))
	if !m.done {
		status += "+"
	}
	status += fmt.Sprintf("  rows %d-%d of %d", m.offset+1, end, len(page))
	if m.loading {
		status += "  loading..."
	} else if m.done && m.index == len(m.pages)-1 {
		status += "  (end)"
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}
