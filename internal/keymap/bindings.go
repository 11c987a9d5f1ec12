package keymap

// Focus contexts.
const (
	ContextGlobal  = "global"
	ContextTree    = "explorer-tree"
	ContextPreview = "explorer-preview"
	ContextConfirm = "confirm"
	ContextHelp    = "help"
)

// Command IDs.
const (
	CmdQuit        = "quit"
	CmdHelp        = "toggle-help"
	CmdSwitchPane  = "switch-pane"
	CmdUp          = "cursor-up"
	CmdDown        = "cursor-down"
	CmdExpand      = "expand"
	CmdCollapse    = "collapse"
	CmdActivate    = "activate"
	CmdTop         = "cursor-top"
	CmdBottom      = "cursor-bottom"
	CmdPageUp      = "page-up"
	CmdPageDown    = "page-down"
	CmdReload      = "reload"
	CmdReveal      = "reveal"
	CmdDisks       = "show-disks"
	CmdYank        = "yank-path"
	CmdOpen        = "open-external"
	CmdMarkdown    = "toggle-markdown"
	CmdSortName    = "sort-name"
	CmdSortSize    = "sort-size"
	CmdSortTime    = "sort-mtime"
	CmdWiden       = "widen-tree"
	CmdNarrow      = "narrow-tree"
	CmdResetLayout = "reset-layout"
	CmdBack        = "back"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "?", Command: CmdHelp, Context: ContextGlobal},
		{Key: "tab", Command: CmdSwitchPane, Context: ContextGlobal},
		{Key: "shift+tab", Command: CmdSwitchPane, Context: ContextGlobal},

		// Tree
		{Key: "up", Command: CmdUp, Context: ContextTree},
		{Key: "k", Command: CmdUp, Context: ContextTree},
		{Key: "down", Command: CmdDown, Context: ContextTree},
		{Key: "j", Command: CmdDown, Context: ContextTree},
		{Key: "right", Command: CmdExpand, Context: ContextTree},
		{Key: "l", Command: CmdExpand, Context: ContextTree},
		{Key: "left", Command: CmdCollapse, Context: ContextTree},
		{Key: "h", Command: CmdCollapse, Context: ContextTree},
		{Key: "enter", Command: CmdActivate, Context: ContextTree},
		{Key: " ", Command: CmdActivate, Context: ContextTree},
		{Key: "g g", Command: CmdTop, Context: ContextTree},
		{Key: "home", Command: CmdTop, Context: ContextTree},
		{Key: "G", Command: CmdBottom, Context: ContextTree},
		{Key: "end", Command: CmdBottom, Context: ContextTree},
		{Key: "pgup", Command: CmdPageUp, Context: ContextTree},
		{Key: "pgdown", Command: CmdPageDown, Context: ContextTree},
		{Key: "r", Command: CmdReload, Context: ContextTree},
		{Key: "R", Command: CmdReveal, Context: ContextTree},
		{Key: "D", Command: CmdDisks, Context: ContextTree},
		{Key: "y", Command: CmdYank, Context: ContextTree},
		{Key: "o", Command: CmdOpen, Context: ContextTree},
		{Key: "s n", Command: CmdSortName, Context: ContextTree},
		{Key: "s s", Command: CmdSortSize, Context: ContextTree},
		{Key: "s t", Command: CmdSortTime, Context: ContextTree},
		{Key: ">", Command: CmdWiden, Context: ContextTree},
		{Key: "<", Command: CmdNarrow, Context: ContextTree},
		{Key: "=", Command: CmdResetLayout, Context: ContextTree},

		// Preview
		{Key: "up", Command: CmdUp, Context: ContextPreview},
		{Key: "k", Command: CmdUp, Context: ContextPreview},
		{Key: "down", Command: CmdDown, Context: ContextPreview},
		{Key: "j", Command: CmdDown, Context: ContextPreview},
		{Key: "pgup", Command: CmdPageUp, Context: ContextPreview},
		{Key: "pgdown", Command: CmdPageDown, Context: ContextPreview},
		{Key: "g g", Command: CmdTop, Context: ContextPreview},
		{Key: "G", Command: CmdBottom, Context: ContextPreview},
		{Key: "m", Command: CmdMarkdown, Context: ContextPreview},
		{Key: "o", Command: CmdOpen, Context: ContextPreview},
		{Key: "y", Command: CmdYank, Context: ContextPreview},
		{Key: "esc", Command: CmdBack, Context: ContextPreview},
		{Key: ">", Command: CmdWiden, Context: ContextPreview},
		{Key: "<", Command: CmdNarrow, Context: ContextPreview},
	}
}

// RegisterDefaults adds the default bindings to r.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.Bind(b)
	}
}

// CommandNames are the short labels shown in the footer and help.
var CommandNames = map[string]string{
	CmdQuit:        "quit",
	CmdHelp:        "help",
	CmdSwitchPane:  "switch pane",
	CmdUp:          "up",
	CmdDown:        "down",
	CmdExpand:      "expand",
	CmdCollapse:    "collapse",
	CmdActivate:    "open",
	CmdTop:         "top",
	CmdBottom:      "bottom",
	CmdPageUp:      "page up",
	CmdPageDown:    "page down",
	CmdReload:      "reload",
	CmdReveal:      "reveal",
	CmdDisks:       "disks",
	CmdYank:        "copy path",
	CmdOpen:        "open externally",
	CmdMarkdown:    "markdown",
	CmdSortName:    "sort by name",
	CmdSortSize:    "sort by size",
	CmdSortTime:    "sort by date",
	CmdWiden:       "widen tree",
	CmdNarrow:      "narrow tree",
	CmdResetLayout: "reset split",
	CmdBack:        "back to tree",
}
