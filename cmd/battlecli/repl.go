package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/battlecore/battlecore/engine"
	"github.com/battlecore/battlecore/notation"
	"github.com/battlecore/battlecore/search"
)

// REPL implements the line-oriented command loop of spec.md §6's CLI
// surface, grounded on the teacher's UCI.Execute dispatch
// (zurichess/uci.go): trim the line, take the first token as the command,
// switch on it, print one block, return to the prompt. Unlike UCI this
// protocol has no idle/busy handshake (the engine is synchronous and single
// threaded per spec.md §5), so every command runs to completion inline.
//
// Command aliases (spec.md's Supplemented Features, grounded on
// original_source/src/io.rs's command_loop) are accepted alongside the long
// forms: s=state, m=matchup, g=generate-instructions, i=instructions,
// a=apply, p=pop, pa=pop-all, e=expectiminimax, q=exit.
type REPL struct {
	out    io.Writer
	log    *zap.SugaredLogger
	floor  float64
	policy engine.DamageRollPolicy

	state     *engine.State
	sessionID string

	// lastBranches is the generator's return from the most recent
	// generate-instructions call; apply picks a branch from it, while
	// pop/pop-all undo from the applied stack.
	lastBranches []engine.Branch
	lastAction1  engine.Option
	lastAction2  engine.Option

	// applied is the stack of instruction lists currently applied to state,
	// most recent last, so pop/pop-all can unwind them in order.
	applied [][]engine.Instruction
}

// NewREPL returns a REPL with no state loaded yet; "state <serialized>"
// must be the first command.
func NewREPL(out io.Writer, log *zap.SugaredLogger, floor float64) *REPL {
	return &REPL{out: out, log: log, floor: floor, policy: engine.RollAverage}
}

// Run drains commands from r, one per line, until EOF or "exit"/"q".
func (repl *REPL) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := repl.Execute(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(repl.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

var errExit = fmt.Errorf("exit")

// Execute runs one command line and writes its output block to repl.out.
func (repl *REPL) Execute(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "state", "s":
		return repl.cmdState(args)
	case "matchup", "m":
		return repl.cmdMatchup(args)
	case "generate-instructions", "g":
		return repl.cmdGenerate(args)
	case "instructions", "i":
		return repl.cmdInstructions(args)
	case "apply", "a":
		return repl.cmdApply(args)
	case "pop", "p":
		return repl.cmdPop(args)
	case "pop-all", "pa":
		return repl.cmdPopAll(args)
	case "expectiminimax", "e":
		return repl.cmdExpectiminimax(args)
	case "exit", "quit", "q":
		return errExit
	default:
		fmt.Fprintf(repl.out, "Unknown command: %s\n", cmd)
		return nil
	}
}

func (repl *REPL) requireState() error {
	if repl.state == nil {
		return fmt.Errorf("%w: no state loaded, use 'state <serialized>' first", engine.ErrMalformedInput)
	}
	return nil
}

func (repl *REPL) cmdState(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: state <serialized>", engine.ErrMalformedInput)
	}
	st, err := notation.Deserialize(args[0])
	if err != nil {
		return err
	}
	repl.state = st
	repl.sessionID = uuid.NewString()
	repl.lastBranches = nil
	repl.applied = nil
	repl.log.Infow("state loaded", "session", repl.sessionID)
	fmt.Fprintln(repl.out, notation.Serialize(repl.state))
	return nil
}

func (repl *REPL) cmdMatchup(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	one := engine.Options(repl.state, engine.SideOne)
	two := engine.Options(repl.state, engine.SideTwo)
	fmt.Fprintf(repl.out, "side-one options: %d\n", len(one))
	for _, o := range one {
		name, _ := notation.FormatAction(repl.state, engine.SideOne, o)
		fmt.Fprintf(repl.out, "  %s\n", name)
	}
	fmt.Fprintf(repl.out, "side-two options: %d\n", len(two))
	for _, o := range two {
		name, _ := notation.FormatAction(repl.state, engine.SideTwo, o)
		fmt.Fprintf(repl.out, "  %s\n", name)
	}
	return nil
}

func (repl *REPL) cmdGenerate(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: generate-instructions <a> <b>", engine.ErrMalformedInput)
	}
	o1, err := notation.ParseAction(repl.state, engine.SideOne, args[0])
	if err != nil {
		return err
	}
	o2, err := notation.ParseAction(repl.state, engine.SideTwo, args[1])
	if err != nil {
		return err
	}
	branches := engine.GenerateInstructions(repl.state, o1, o2, repl.policy, repl.floor)
	repl.lastBranches = branches
	repl.lastAction1, repl.lastAction2 = o1, o2
	fmt.Fprintf(repl.out, "%d branches\n", len(branches))
	for i, b := range branches {
		fmt.Fprintf(repl.out, "  [%d] p=%.6f instructions=%d\n", i, b.Probability, len(b.Instructions))
	}
	return nil
}

func (repl *REPL) cmdInstructions(args []string) error {
	if repl.lastBranches == nil {
		return fmt.Errorf("%w: no generate-instructions call yet", engine.ErrMalformedInput)
	}
	fmt.Fprintf(repl.out, "%d branches\n", len(repl.lastBranches))
	for i, b := range repl.lastBranches {
		fmt.Fprintf(repl.out, "  [%d] p=%.6f instructions=%d\n", i, b.Probability, len(b.Instructions))
	}
	return nil
}

func (repl *REPL) cmdApply(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	if repl.lastBranches == nil {
		return fmt.Errorf("%w: no generate-instructions call yet", engine.ErrMalformedInput)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: apply <branch-index>", engine.ErrMalformedInput)
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= len(repl.lastBranches) {
		return fmt.Errorf("%w: branch index %q out of range", engine.ErrMalformedInput, args[0])
	}
	branch := repl.lastBranches[idx]
	engine.ApplyList(repl.state, branch.Instructions)
	repl.applied = append(repl.applied, branch.Instructions)
	repl.lastBranches = nil
	fmt.Fprintln(repl.out, notation.Serialize(repl.state))
	return nil
}

func (repl *REPL) cmdPop(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	if len(repl.applied) == 0 {
		return fmt.Errorf("%w: nothing applied to pop", engine.ErrMalformedInput)
	}
	last := repl.applied[len(repl.applied)-1]
	repl.applied = repl.applied[:len(repl.applied)-1]
	engine.ReverseList(repl.state, last)
	fmt.Fprintln(repl.out, notation.Serialize(repl.state))
	return nil
}

func (repl *REPL) cmdPopAll(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	for len(repl.applied) > 0 {
		last := repl.applied[len(repl.applied)-1]
		repl.applied = repl.applied[:len(repl.applied)-1]
		engine.ReverseList(repl.state, last)
	}
	fmt.Fprintln(repl.out, notation.Serialize(repl.state))
	return nil
}

func (repl *REPL) cmdExpectiminimax(args []string) error {
	if err := repl.requireState(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: expectiminimax <depth>", engine.ErrMalformedInput)
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return fmt.Errorf("%w: depth %q invalid", engine.ErrMalformedInput, args[0])
	}
	deadline := search.NewDeadline(30 * time.Second)
	cfg := search.ExpectiminimaxConfig{
		Policy:           repl.policy,
		ProbabilityFloor: repl.floor,
		MaxDepth:         depth + 1,
		Logger:           search.NewZapLogger(repl.log.With("session", repl.sessionID)),
	}
	matrix := search.RunExpectiminimax(repl.state, deadline, cfg)
	fmt.Fprintf(repl.out, "depth-reached %d\n", matrix.DepthReached)
	for i, o1 := range matrix.SideOneActions {
		name1, _ := notation.FormatAction(repl.state, engine.SideOne, o1)
		for j, o2 := range matrix.SideTwoActions {
			name2, _ := notation.FormatAction(repl.state, engine.SideTwo, o2)
			fmt.Fprintf(repl.out, "  %s vs %s = %.4f\n", name1, name2, matrix.Values[i][j])
		}
	}
	return nil
}
