package tree

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/pathutil"
)

// Reveal rebuilds the tree from the volume list and descends to full,
// reloading each ancestor in turn. The target itself is selected and
// activated but not expanded.
func (c *Controller) Reveal(full string) tea.Cmd {
	if c.busy {
		return nil
	}
	c.busy = true
	c.seq++
	seq := c.seq

	ancestors := pathutil.AncestorsSep(c.cfg.Sep, full)
	target := ancestors[len(ancestors)-1]
	disks, svc := c.disks, c.folders
	pageSize, fullPages := c.cfg.PageSize, c.cfg.FullPagination
	opts := c.options("")

	return func() tea.Msg {
		ctx := context.Background()
		msg := RevealedMsg{Seq: seq, Target: target}

		vols, err := listDisks(ctx, disks)
		if err != nil || len(vols) == 0 {
			msg.Err = err
			vols = []string{ancestors[0]}
		}
		msg.Disks = vols

		for _, p := range ancestors[:len(ancestors)-1] {
			o := opts
			o.Path = p
			l, err := Paginate(ctx, svc, o, pageSize, fullPages)
			if l != nil {
				msg.Steps = append(msg.Steps, revealStep{Path: p, Listing: l})
			}
			if err != nil {
				msg.Err = err
				break
			}
		}
		return msg
	}
}

// ShowDisks resets the tree to the bare volume list.
func (c *Controller) ShowDisks() tea.Cmd {
	if c.busy {
		return nil
	}
	c.busy = true
	c.seq++
	seq := c.seq
	disks := c.disks
	fallback := pathutil.JoinSep(c.cfg.Sep, "", "")

	return func() tea.Msg {
		vols, err := listDisks(context.Background(), disks)
		if err != nil || len(vols) == 0 {
			vols = []string{fallback}
		}
		return RevealedMsg{Seq: seq, Disks: vols, Err: err}
	}
}

func listDisks(ctx context.Context, svc folder.DiskListService) ([]string, error) {
	if svc == nil {
		return nil, nil
	}
	return svc.Disks(ctx)
}

func (c *Controller) applyRevealed(m RevealedMsg) tea.Cmd {
	if m.Seq != c.seq {
		return nil
	}
	c.busy = false
	c.reset()

	for _, d := range m.Disks {
		c.addRoot(d, d)
	}

	if m.Err != nil {
		c.logger.Warn("reveal incomplete", "target", m.Target, "err", m.Err)
	}

	for _, step := range m.Steps {
		n := c.nodes[step.Path]
		if n == nil {
			c.logger.Warn("reveal step has no node", "path", step.Path)
			break
		}
		c.attach(n, step.Listing)
	}

	c.rebuild()
	target := c.nodes[m.Target]
	if target == nil {
		c.scrollToSelected()
		return changed
	}
	c.Select(target.Path())
	return tea.Batch(changed, activate(target))
}
