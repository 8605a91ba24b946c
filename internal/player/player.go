package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/solace/internal/actions"
	"github.com/pixil98/solace/internal/display"
	"github.com/pixil98/solace/internal/game"
)

// inputBuffer is how many lines a player may type ahead of the game.
const inputBuffer = 16

// builtin is a command every player has regardless of learned actions.
type builtin func(p *Player, args string)

var builtins = map[string]builtin{
	"stand":     stateChange(actions.StateStanding, "You are already standing.", "You stand up."),
	"sit":       stateChange(actions.StateSitting, "You are already sitting.", "You sit down."),
	"rest":      stateChange(actions.StateResting, "You are already resting.", "You sit down and rest."),
	"sleep":     stateChange(actions.StateSleeping, "You are already asleep.", "You lie down and go to sleep."),
	"wake":      (*Player).wake,
	"cooldowns": (*Player).cooldowns,
	"prompt":    (*Player).setPrompt,
}

// Player runs one connected character's commands, one line at a time.
type Player struct {
	charId  string
	state   *game.PlayerState
	cmds    map[string]*actions.Command
	exec    *actions.Executor
	clock   actions.Scheduler
	battles actions.Battles
	msgr    actions.Messenger

	input chan string
}

// Id returns the player's unique identifier (lowercase character name)
func (p *Player) Id() string {
	return p.charId
}

// Queue hands a line of input to the player's goroutine. It reports false
// if the player has too much input pending.
func (p *Player) Queue(line string) bool {
	select {
	case p.input <- line:
		return true
	default:
		return false
	}
}

// Play handles queued input until ctx is done or the session is ended.
func (p *Player) Play(ctx context.Context) error {
	p.send(fmt.Sprintf("Now playing as %s, welcome!", p.state.Name()))
	p.prompt()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.state.Done():
			p.send("Goodbye!")
			return nil
		case line := <-p.input:
			p.Handle(line)
			p.prompt()
		}
	}
}

// Handle runs a single line of input.
func (p *Player) Handle(line string) {
	word, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return
	}
	word = strings.ToLower(word)
	args = strings.TrimSpace(args)

	if p.state.IsCasting() {
		p.send("You are focusing on casting and cannot act further!")
		return
	}

	if b, ok := builtins[word]; ok {
		b(p, args)
		return
	}

	if cmd, ok := p.cmds[word]; ok {
		target, _, _ := strings.Cut(args, " ")
		p.exec.Execute(cmd, target)
		return
	}

	slog.Debug("unknown command", "player", p.charId, "command", word)
	p.send("Sorry, that is not an option.")
}

func stateChange(to actions.PlayState, already, done string) builtin {
	return func(p *Player, _ string) {
		cur := p.state.PlayState()
		switch {
		case cur == to:
			p.send(already)
		case cur == actions.StateFighting:
			p.send("You are in the middle of a fight!")
		case cur == actions.StateSleeping && to != actions.StateStanding:
			p.send("You must wake up first.")
		case p.state.SetPlayState(to):
			p.send(done)
		default:
			p.send("You are in the middle of a fight!")
		}
	}
}

func (p *Player) wake(_ string) {
	if p.state.PlayState() != actions.StateSleeping {
		p.send("You are already awake.")
		return
	}
	if p.state.SetPlayState(actions.StateStanding) {
		p.send("You wake up and stand.")
	}
}

func (p *Player) cooldowns(_ string) {
	report := actions.CooldownReport(p.state, p.cmds, p.clock.Now())
	if len(report) == 0 {
		p.send("You have not learned any actions.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Cooldowns:")
	for _, a := range report {
		var status string
		switch {
		case a.Global:
			status = "global cooldown"
		case a.Remaining > 0:
			status = fmt.Sprintf("%d ticks", a.Remaining)
		default:
			status = "ready"
		}
		fmt.Fprintf(&sb, "\n  %-24s %s", display.Title(a.DisplayName), status)
	}
	p.msgr.Send(p.charId, sb.String())
}

func (p *Player) setPrompt(args string) {
	if args == "" {
		p.send(fmt.Sprintf("Your prompt is: %s", p.state.Prompt()))
		return
	}
	p.state.SetPrompt(args)
	p.send("Prompt set.")
}

func (p *Player) prompt() {
	var target actions.Player
	if b := p.battles.BattleFor(p.charId); b != nil {
		target, _ = b.TargetFor(p.charId).(actions.Player)
	}
	p.msgr.Send(p.charId, ExpandPrompt(p.state.Prompt(), p.state, target))
}

func (p *Player) send(msg string) {
	p.msgr.Send(p.charId, display.Wrap(msg))
}
