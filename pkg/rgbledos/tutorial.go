package rgbledos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/shlex"
)

// TutorialState is the state of a tutorial run.
type TutorialState int

const (
	// AwaitingStep waits for operator input before running the current step.
	AwaitingStep TutorialState = iota
	// Exited means the operator left the tutorial early.
	Exited
	// Complete means every step ran.
	Complete
)

func (s TutorialState) String() string {
	switch s {
	case AwaitingStep:
		return "awaiting-step"
	case Exited:
		return "exited"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("TutorialState(%d)", int(s))
	}
}

// TutorialStep is one scripted step of the walkthrough.
type TutorialStep struct {
	Description string
	Command     string
}

// TutorialSteps is the fixed walkthrough script.
var TutorialSteps = []TutorialStep{
	{"Check RGB LED controller status", "rgbled status"},
	{"Set LED to red (25% brightness)", "rgbled setrgb 25 0 0"},
	{"Set LED to green", "rgbled setrgb 0 25 0"},
	{"Set LED to blue", "rgbled setrgb 0 0 25"},
	{"Set LED to cyan using hex color (GRB format)", "rgbled setcolor 0x190019"},
}

// Executor runs a tokenized "rgbled <command> ..." line.
type Executor func(ctx context.Context, out io.Writer, argv []string)

// TutorialOptions tune a tutorial run.
type TutorialOptions struct {
	// StepDelay is the pause after the intro and after each executed step.
	StepDelay time.Duration
	// DeviceInitialized controls whether the "device not initialized" note is shown.
	DeviceInitialized bool
}

// Tutorial walks an operator through the LED commands step by step.
type Tutorial struct {
	input LineSource
	exec  Executor
	opts  TutorialOptions

	state TutorialState
	step  int
}

// NewTutorial creates a tutorial waiting for step 1.
func NewTutorial(input LineSource, exec Executor, opts TutorialOptions) *Tutorial {
	return &Tutorial{
		input: input,
		exec:  exec,
		opts:  opts,
		state: AwaitingStep,
		step:  1,
	}
}

// State returns the current state.
func (t *Tutorial) State() TutorialState {
	return t.state
}

// Step returns the 1-based number of the step being awaited.
func (t *Tutorial) Step() int {
	return t.step
}

// Prompt prints the current step's instructions.
func (t *Tutorial) Prompt(out io.Writer) {
	if t.state != AwaitingStep {
		return
	}
	step := TutorialSteps[t.step-1]
	fmt.Fprintf(out, "\nStep %d: %s\n", t.step, step.Description)
	fmt.Fprintf(out, "Try the command: %s\n", step.Command)
	fmt.Fprint(out, "\nPress Enter when ready (or type 'exit' to quit): ")
}

// Feed handles one line of operator input: "exit" or "quit" leaves the tutorial,
// anything else runs the current step's command and moves on.
func (t *Tutorial) Feed(ctx context.Context, out io.Writer, input string) {
	if t.state != AwaitingStep {
		return
	}

	fmt.Fprintln(out)
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		fmt.Fprintln(out, "Tutorial exited.")
		t.state = Exited
		return
	}

	command := TutorialSteps[t.step-1].Command
	fmt.Fprintf(out, "> %s\n", command)
	if argv, err := shlex.Split(command); err == nil {
		t.exec(ctx, out, argv)
	}

	t.step++
	if t.step > len(TutorialSteps) {
		t.state = Complete
	}
}

// Run drives the tutorial to completion, reading operator input from the line source.
// Running out of input leaves the tutorial as if the operator typed "exit".
func (t *Tutorial) Run(ctx context.Context, out io.Writer) error {
	t.printIntro(out)
	if err := pause(ctx, t.opts.StepDelay); err != nil {
		return err
	}

	if !t.opts.DeviceInitialized {
		fmt.Fprintln(out, "Note: Device not initialized. Tutorial will show commands anyway.")
		fmt.Fprintln(out, "Start the shell with a reachable transport, e.g.:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  rgbledctl shell --transport serial --serial-port /dev/ttyUSB0")
		fmt.Fprintln(out)
		if err := pause(ctx, t.opts.StepDelay); err != nil {
			return err
		}
	}

	for t.state == AwaitingStep {
		t.Prompt(out)

		line, err := t.input.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			line = "exit"
		} else if err != nil {
			return err
		}

		t.Feed(ctx, out, line)
		if t.state == Exited {
			return nil
		}

		if err := pause(ctx, t.opts.StepDelay); err != nil {
			return err
		}
	}

	t.printOutro(out)
	return nil
}

func (t *Tutorial) printIntro(out io.Writer) {
	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "   RGB LED Interactive Tutorial")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This tutorial will guide you through controlling WS2812B RGB LEDs.")
	fmt.Fprintln(out, "Type 'exit' at any prompt to quit the tutorial.")
	fmt.Fprintln(out)
}

func (t *Tutorial) printOutro(out io.Writer) {
	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "   Tutorial Complete!")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "You've learned how to:")
	fmt.Fprintln(out, "  - Check RGB LED controller status")
	fmt.Fprintln(out, "  - Set colors using RGB values")
	fmt.Fprintln(out, "  - Set colors using hex (GRB format)")
	fmt.Fprintln(out, "\nFor more info, run: rgbled help")
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
