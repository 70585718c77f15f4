package runtime

// Command is an effect the dispatcher asks the loop to perform on the
// surface after handling a message.
type Command interface {
	isCommand()
}

// Clear blanks the whole screen before the next frame.
type Clear struct{}

func (Clear) isCommand() {}

// Flush shows pending drawing immediately.
type Flush struct{}

func (Flush) isCommand() {}

// Sync repaints every cell on the next flush.
type Sync struct{}

func (Sync) isCommand() {}

// Quit ends the loop with a controlled shutdown.
type Quit struct{}

func (Quit) isCommand() {}

// HandleResult is returned from App.HandleMessage.
type HandleResult struct {
	Handled  bool      // Was the message consumed?
	Commands []Command // Effects for the loop to apply, in order
}

// Handled returns a result indicating the message was consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result indicating the message was not consumed.
func Unhandled() HandleResult {
	return HandleResult{Handled: false}
}

// WithCommand returns a handled result with a single command.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// WithCommands returns a handled result with multiple commands.
func WithCommands(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}

// HasCommand reports whether the result carries a command of the same type as cmd.
func (r HandleResult) HasCommand(cmd Command) bool {
	for _, c := range r.Commands {
		if c == cmd {
			return true
		}
	}
	return false
}
