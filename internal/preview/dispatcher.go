package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/tree"
)

// Options configure the dispatcher.
type Options struct {
	Threshold      int64
	SyntaxTheme    string
	Autoplay       bool
	Volume         float64
	PageSize       int
	FullPagination bool
	Sep            string
	ListOrder      folder.OrderSpec
	Opener         string
}

// DefaultOptions returns the standard dispatcher options.
func DefaultOptions() Options {
	return Options{
		Threshold:   DefaultThreshold,
		SyntaxTheme: DefaultSyntaxTheme,
		Autoplay:    true,
		Volume:      DefaultVolume,
		PageSize:    tree.DefaultPageSize,
		Sep:         string(filepath.Separator),
		ListOrder:   folder.DefaultOrder,
		Opener:      defaultOpener(),
	}
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	}
	return "xdg-open"
}

// Content describes the mounted strategy.
type Content struct {
	Type     ContentType
	Mime     string
	Path     string
	Size     int64
	Loading  bool
	Err      error
	Encoding string
	Pages    int

	Entries   []folder.Entry
	Base      string
	Truncated bool

	raw string
}

// LoadedMsg delivers the asynchronous part of a strategy.
type LoadedMsg struct {
	Seq       uint64
	Text      string
	Encoding  string
	Pages     int
	Entries   []folder.Entry
	Base      string
	Truncated bool
	Err       error
}

// Dispatcher mounts exactly one strategy at a time into a scrollable
// viewport.
type Dispatcher struct {
	opts    Options
	text    folder.TextService
	folders folder.Service
	player  Player
	logger  *slog.Logger

	seq      uint64
	cur      Content
	markdown bool

	vp     viewport.Model
	width  int
	height int
}

// NewDispatcher creates a dispatcher. player may be nil to disable media.
func NewDispatcher(opts Options, text folder.TextService, folders folder.Service, player Player, logger *slog.Logger) *Dispatcher {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.SyntaxTheme == "" {
		opts.SyntaxTheme = DefaultSyntaxTheme
	}
	if opts.Sep == "" {
		opts.Sep = string(filepath.Separator)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		opts:    opts,
		text:    text,
		folders: folders,
		player:  player,
		logger:  logger,
		cur:     Content{Type: TypeNone},
		vp:      viewport.New(0, 0),
	}
}

// Current returns the mounted content.
func (d *Dispatcher) Current() Content { return d.cur }

// Markdown reports whether markdown rendering is on.
func (d *Dispatcher) Markdown() bool { return d.markdown }

// SetSize resizes the viewport and re-renders width-dependent content.
func (d *Dispatcher) SetSize(width, height int) {
	if width == d.width && height == d.height {
		return
	}
	d.width, d.height = width, height
	d.vp.Width = max(width, 0)
	d.vp.Height = max(height, 0)
	d.refresh()
}

// ViewFile selects a strategy for f and mounts it.
func (d *Dispatcher) ViewFile(f File) tea.Cmd {
	d.stopMedia()
	d.seq++
	seq := d.seq

	t := Select(f, d.opts.Threshold)
	d.cur = Content{Type: t, Mime: f.Mime, Path: f.Path, Size: f.Size}
	d.markdown = false
	d.logger.Debug("preview", "path", f.Path, "type", t, "mime", f.Mime, "size", f.Size)

	var cmd tea.Cmd
	switch t {
	case TypeImage:
		d.cur.Loading = true
		cmd = d.loadImage(seq, f.Path)
	case TypeEmbed:
		d.cur.Loading = true
		cmd = d.loadPDF(seq, f.Path)
	case TypeHTML, TypeFrame, TypeText:
		d.cur.Loading = true
		cmd = d.fetchText(seq, f.Path)
	case TypeMedia:
		if d.opts.Autoplay {
			cmd = d.play(seq, f.Path)
		}
	}
	d.refresh()
	d.vp.GotoTop()
	return cmd
}

// ShowList mounts the flat content list for a directory.
func (d *Dispatcher) ShowList(path string) tea.Cmd {
	d.stopMedia()
	d.seq++
	seq := d.seq
	d.cur = Content{Type: TypeList, Path: path, Loading: true}
	d.refresh()
	d.vp.GotoTop()

	svc := d.folders
	opts := folder.Options{
		Cache: folder.ContentCache,
		Path:  path,
		Order: d.opts.ListOrder,
		Meta:  folder.ContentMeta,
	}
	pageSize, full, sep := d.opts.PageSize, d.opts.FullPagination, d.opts.Sep
	return func() tea.Msg {
		l, err := tree.Paginate(context.Background(), svc, opts, pageSize, full)
		if l == nil {
			return LoadedMsg{Seq: seq, Err: err}
		}
		return LoadedMsg{
			Seq:       seq,
			Entries:   l.Entry.Children,
			Base:      l.ChildBase(sep),
			Truncated: !l.Complete,
			Err:       err,
		}
	}
}

// Update applies strategy results and scroll input.
func (d *Dispatcher) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case LoadedMsg:
		if m.Seq != d.seq {
			return nil
		}
		d.cur.Loading = false
		d.cur.Err = m.Err
		d.cur.raw = m.Text
		d.cur.Encoding = m.Encoding
		d.cur.Pages = m.Pages
		d.cur.Entries = m.Entries
		d.cur.Base = m.Base
		d.cur.Truncated = m.Truncated
		if m.Err != nil {
			d.logger.Debug("preview load failed", "path", d.cur.Path, "err", m.Err)
		}
		d.refresh()
		return nil
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		d.vp, cmd = d.vp.Update(msg)
		return cmd
	}
	return nil
}

// ScrollBy scrolls the viewport by delta lines.
func (d *Dispatcher) ScrollBy(delta int) {
	d.vp.SetYOffset(d.vp.YOffset + delta)
}

// ScrollPercent reports the viewport position, 0..1.
func (d *Dispatcher) ScrollPercent() float64 { return d.vp.ScrollPercent() }

// ToggleMarkdown switches markdown rendering for markdown text files.
func (d *Dispatcher) ToggleMarkdown() bool {
	if d.cur.Type != TypeText || !isMarkdown(d.cur.Path, d.cur.Mime) {
		return false
	}
	d.markdown = !d.markdown
	d.refresh()
	return true
}

// OpenExternal hands the current file to the system viewer.
func (d *Dispatcher) OpenExternal() tea.Cmd {
	return d.Open(d.cur.Path)
}

// Open hands path to the system viewer.
func (d *Dispatcher) Open(path string) tea.Cmd {
	opener := d.opts.Opener
	if path == "" || opener == "" {
		return nil
	}
	return func() tea.Msg {
		if err := exec.Command(opener, path).Start(); err != nil {
			return OpenFailedMsg{Path: path, Err: err}
		}
		return nil
	}
}

// OpenFailedMsg reports a failed external open.
type OpenFailedMsg struct {
	Path string
	Err  error
}

// View renders the viewport.
func (d *Dispatcher) View() string {
	return d.vp.View()
}

// Close stops playback and unmounts the current strategy.
func (d *Dispatcher) Close() {
	d.stopMedia()
	d.seq++
	d.cur = Content{Type: TypeNone}
	d.refresh()
}

func (d *Dispatcher) stopMedia() {
	if d.cur.Type != TypeMedia || d.player == nil {
		return
	}
	if err := d.player.Stop(); err != nil {
		d.logger.Warn("stop player", "err", err)
	}
}

func (d *Dispatcher) fetchText(seq uint64, path string) tea.Cmd {
	svc := d.text
	return func() tea.Msg {
		if svc == nil {
			return LoadedMsg{Seq: seq, Err: fmt.Errorf("no text service")}
		}
		tc, err := svc.ReadText(context.Background(), path)
		if err != nil {
			return LoadedMsg{Seq: seq, Err: err}
		}
		return LoadedMsg{Seq: seq, Text: tc.Text, Encoding: tc.Encoding}
	}
}

func (d *Dispatcher) loadImage(seq uint64, path string) tea.Cmd {
	w, h := max(d.width, 10), max(d.height, 5)
	return func() tea.Msg {
		img, err := termimg.Open(path)
		if err != nil {
			return LoadedMsg{Seq: seq, Err: err}
		}
		out, err := img.Width(w).Height(h).Render()
		if err != nil {
			return LoadedMsg{Seq: seq, Err: err}
		}
		return LoadedMsg{Seq: seq, Text: out}
	}
}

func (d *Dispatcher) loadPDF(seq uint64, path string) tea.Cmd {
	return func() tea.Msg {
		n, err := api.PageCountFile(path)
		return LoadedMsg{Seq: seq, Pages: n, Err: err}
	}
}

func (d *Dispatcher) play(seq uint64, path string) tea.Cmd {
	p, vol := d.player, d.opts.Volume
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return LoadedMsg{Seq: seq, Err: p.Play(path, vol)}
	}
}

func isMarkdown(path, mime string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return mime == "text/markdown" || ext == ".md" || ext == ".markdown"
}

// refresh re-renders the mounted content into the viewport.
func (d *Dispatcher) refresh() {
	d.vp.SetContent(d.render())
}

func (d *Dispatcher) render() string {
	c := d.cur
	if c.Loading {
		return "Loading…"
	}

	switch c.Type {
	case TypeText:
		if c.Err != nil {
			return c.Err.Error()
		}
		text := ansi.Strip(c.raw)
		if d.markdown {
			if out, err := renderMarkdown(text, d.width); err == nil {
				return out
			}
		}
		return highlight(c.Path, text, d.opts.SyntaxTheme)
	case TypeHTML:
		if c.Err != nil {
			return c.Err.Error()
		}
		return isolateHTML(c.raw)
	case TypeFrame:
		if c.Err != nil {
			return c.Err.Error()
		}
		return highlightAs("json", prettyJSON(ansi.Strip(c.raw)), d.opts.SyntaxTheme)
	case TypeImage:
		if c.Err != nil || c.raw == "" {
			return fmt.Sprintf("[image] %s\n%s", c.Path, c.Mime)
		}
		return c.raw
	case TypeEmbed:
		return renderEmbed(c)
	case TypeMedia:
		return renderMedia(c, d.opts)
	case TypeList:
		return renderList(c, d.width)
	}
	return "No preview"
}

func renderEmbed(c Content) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s", filepath.Base(c.Path), c.Mime)
	if c.Pages > 0 {
		fmt.Fprintf(&b, " · %d pages", c.Pages)
	}
	if c.Err != nil {
		fmt.Fprintf(&b, "\n\n%s", c.Err.Error())
	}
	b.WriteString("\n\nPress o to open in the system viewer.")
	return b.String()
}

func renderMedia(c Content, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s · %s\n", filepath.Base(c.Path), c.Mime, FormatSize(c.Size))
	switch {
	case c.Err != nil:
		fmt.Fprintf(&b, "\n%s", c.Err.Error())
	case opts.Autoplay:
		fmt.Fprintf(&b, "\nPlaying at %d%% volume", int(opts.Volume*100))
	default:
		b.WriteString("\nPress o to open in the system player.")
	}
	return b.String()
}
