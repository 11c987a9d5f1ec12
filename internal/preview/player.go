package preview

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// DefaultVolume is the initial playback volume, 0..1.
const DefaultVolume = 0.5

// Player plays audio and video files outside the terminal.
type Player interface {
	Play(path string, volume float64) error
	Stop() error
}

// ExecPlayer runs an external player process, one at a time. Args may use
// {path} and {volume} (0-100) placeholders.
type ExecPlayer struct {
	Command string
	Args    []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecPlayer returns a player for command. Known players get sensible
// default arguments.
func NewExecPlayer(command string) *ExecPlayer {
	p := &ExecPlayer{Command: command}
	switch command {
	case "ffplay":
		p.Args = []string{"-autoexit", "-loglevel", "quiet", "-volume", "{volume}", "{path}"}
	case "mpv":
		p.Args = []string{"--really-quiet", "--volume={volume}", "{path}"}
	default:
		p.Args = []string{"{path}"}
	}
	return p
}

// Play stops any current playback and starts path.
func (p *ExecPlayer) Play(path string, volume float64) error {
	if err := p.Stop(); err != nil {
		return err
	}

	vol := strconv.Itoa(int(volume * 100))
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		a = strings.ReplaceAll(a, "{path}", path)
		args[i] = strings.ReplaceAll(a, "{volume}", vol)
	}

	cmd := exec.Command(p.Command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Command, err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	go func() { _ = cmd.Wait() }()
	return nil
}

// Stop kills the running player, if any.
func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop player: %w", err)
	}
	return nil
}
