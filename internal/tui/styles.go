package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wcrum/krb-tui/internal/config"
	"github.com/wcrum/krb-tui/internal/highlight"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errorC    lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	barBg     lipgloss.Color
	barFg     lipgloss.Color
	selectBg  lipgloss.Color
	prodBg    lipgloss.Color

	hlComment lipgloss.Color
	hlKey     lipgloss.Color
	hlString  lipgloss.Color
	hlNumber  lipgloss.Color
	hlBoolean lipgloss.Color
}

var (
	lightPalette = palette{
		primary:   lipgloss.Color("#326CE5"), // Kubernetes blue
		secondary: lipgloss.Color("#6200EE"),
		success:   lipgloss.Color("#1B7F3B"),
		warning:   lipgloss.Color("#B26A00"),
		errorC:    lipgloss.Color("#C62828"),
		muted:     lipgloss.Color("#757575"),
		text:      lipgloss.Color("#212121"),
		barBg:     lipgloss.Color("#E0E0E0"),
		barFg:     lipgloss.Color("#212121"),
		selectBg:  lipgloss.Color("#D6E4FF"),
		prodBg:    lipgloss.Color("#8B0000"),
		hlComment: lipgloss.Color("#6A737D"),
		hlKey:     lipgloss.Color("#005CC5"),
		hlString:  lipgloss.Color("#22863A"),
		hlNumber:  lipgloss.Color("#E36209"),
		hlBoolean: lipgloss.Color("#D73A49"),
	}

	darkPalette = palette{
		primary:   lipgloss.Color("#6C9EFF"),
		secondary: lipgloss.Color("#BB86FC"),
		success:   lipgloss.Color("#04B575"),
		warning:   lipgloss.Color("#FFBD2E"),
		errorC:    lipgloss.Color("#FF6B6B"),
		muted:     lipgloss.Color("#8A8A8A"),
		text:      lipgloss.Color("#E0E0E0"),
		barBg:     lipgloss.Color("#333333"),
		barFg:     lipgloss.Color("#FFFFFF"),
		selectBg:  lipgloss.Color("#3A3A3A"),
		prodBg:    lipgloss.Color("#8B0000"),
		hlComment: lipgloss.Color("#8B949E"),
		hlKey:     lipgloss.Color("#79C0FF"),
		hlString:  lipgloss.Color("#A5D6FF"),
		hlNumber:  lipgloss.Color("#FFA657"),
		hlBoolean: lipgloss.Color("#FF7B72"),
	}
)

// styles is the rendered form of one theme.
type styles struct {
	theme config.Theme

	title        lipgloss.Style
	endpoint     lipgloss.Style
	statusBar    lipgloss.Style
	selected     lipgloss.Style
	header       lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	toastSuccess lipgloss.Style
	toastError   lipgloss.Style
	bannerProd   lipgloss.Style
	dialog       lipgloss.Style
	dialogTitle  lipgloss.Style
	dialogTarget lipgloss.Style
	errorText    lipgloss.Style
	errorScreen  lipgloss.Style
	muted        lipgloss.Style
	spinner      lipgloss.Style
	focused      lipgloss.Style

	hl map[highlight.Class]lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	p := lightPalette
	if theme == config.ThemeDark {
		p = darkPalette
	}

	return styles{
		theme: theme,

		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		endpoint: lipgloss.NewStyle().
			Foreground(p.secondary),

		statusBar: lipgloss.NewStyle().
			Background(p.barBg).
			Foreground(p.barFg).
			PaddingLeft(1).
			PaddingRight(1),

		selected: lipgloss.NewStyle().
			Background(p.selectBg).
			Bold(true),

		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.muted).
			Underline(true),

		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		tabInactive: lipgloss.NewStyle().
			Foreground(p.muted),

		toastSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),

		toastError: lipgloss.NewStyle().
			Foreground(p.errorC).
			Bold(true),

		bannerProd: lipgloss.NewStyle().
			Background(p.prodBg).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(1, 2),

		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),

		dialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		dialogTarget: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.warning),

		errorText: lipgloss.NewStyle().
			Foreground(p.errorC),

		errorScreen: lipgloss.NewStyle().
			Foreground(p.errorC).
			Bold(true).
			PaddingLeft(2).
			PaddingTop(1),

		muted: lipgloss.NewStyle().
			Foreground(p.muted),

		spinner: lipgloss.NewStyle().
			Foreground(p.primary),

		focused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		hl: map[highlight.Class]lipgloss.Style{
			highlight.ClassComment: lipgloss.NewStyle().Foreground(p.hlComment).Italic(true),
			highlight.ClassKey:     lipgloss.NewStyle().Foreground(p.hlKey),
			highlight.ClassString:  lipgloss.NewStyle().Foreground(p.hlString),
			highlight.ClassNumber:  lipgloss.NewStyle().Foreground(p.hlNumber),
			highlight.ClassBoolean: lipgloss.NewStyle().Foreground(p.hlBoolean),
		},
	}
}

// annotate is the highlight.Styler for document lines.
func (s styles) annotate(class highlight.Class, text string) string {
	st, ok := s.hl[class]
	if !ok || text == "" {
		return text
	}
	return st.Render(text)
}
