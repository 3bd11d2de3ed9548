package shell

import (
	"errors"
	"strings"

	"github.com/abiosoft/ishell/v2"

	"lpubmeta/internal/version"
)

// New builds an interactive shell whose input is routed to the session.
// The ishell help builtin is replaced by \help; exit and clear stay.
func New(s *Session) *ishell.Shell {
	sh := ishell.New()
	sh.SetPrompt("lpub> ")
	sh.DeleteCmd("help")

	sh.Println(version.GetFormattedVersion() + " - interactive meta-command shell")
	sh.Println(`Type '\help' for commands or 'exit' to quit.`)

	sh.NotFound(s.ProcessInput)
	return sh
}

// ProcessInput handles a line of input from the interactive shell.
func (s *Session) ProcessInput(c *ishell.Context) {
	if len(c.RawArgs) == 0 {
		return
	}
	s.handle(c, strings.Join(c.RawArgs, " "))
}

// printer is the part of ishell.Context the handler writes to.
type printer interface {
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

func (s *Session) handle(c printer, rawInput string) {
	err := s.Execute(rawInput)
	if err == nil {
		return
	}
	s.log.Error("Command failed", "session", s.ID, "command", strings.TrimSpace(rawInput), "error", err)
	c.Printf("Error: %s\n", err.Error())
	if errors.Is(err, ErrUnknownCommand) {
		c.Println(`Type \help for available commands`)
	}
}
