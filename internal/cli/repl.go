// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive RPN evaluation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Engine is the default engine to use for evaluations.
	Engine string
	// Precision is the number of fractional digits for decimal display.
	Precision uint
	// Timeout is the maximum duration for each evaluation step.
	Timeout time.Duration
	// DecimalOutput displays the decimal rendering of the top value.
	DecimalOutput bool
}

// wordArity maps each arithmetic word to the number of stack values it
// consumes. Stack manipulation words (dup, swap, drop) are handled by the
// REPL itself and are deliberately absent.
var wordArity = map[string]int{
	"+": 2, "-": 2, "*": 2, "/": 2, "%": 2, "gcd": 2, "^": 2,
	"neg": 1, "abs": 1, "inv": 1,
}

// REPL represents an interactive RPN evaluation session. Unlike one-shot
// mode, the stack persists between input lines, so values can be built up
// incrementally.
type REPL struct {
	config        REPLConfig
	registry      map[string]calc.Engine
	currentEngine string
	stack         []calc.Result
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: Map of available engines.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry map[string]calc.Engine, config REPLConfig) *REPL {
	currentEngine := config.Engine
	if currentEngine == "" || currentEngine == "all" {
		// Pick the first available engine as default
		for _, name := range sortedKeys(registry) {
			currentEngine = name
			break
		}
	}

	return &REPL{
		config:        config,
		registry:      registry,
		currentEngine: currentEngine,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// sortedKeys returns the registry keys in lexical order so listings and the
// default engine pick are stable.
func sortedKeys(registry map[string]calc.Engine) []string {
	keys := make([]string, 0, len(registry))
	for name := range registry {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rpn> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processLine(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 Exact RPN Calculator - Interactive Mode%s           %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:prec [n]%s     - Show or set the decimal precision\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:dec%s          - Toggle decimal display of the top value\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:clear%s        - Clear the stack\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:engine [x]%s   - Show or switch the engine (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getEngineList())
	fmt.Fprintf(r.out, "  %s:help%s         - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:quit%s         - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "\nAnything else is evaluated as RPN tokens against the persistent stack:\n")
	fmt.Fprintf(r.out, "  numbers push values      %s42  -7  22/7  3.14%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "  words consume values     %s+ - * / %% gcd ^ neg abs inv dup swap drop%s\n", ui.ColorCyan(), ui.ColorReset())
}

// getEngineList returns a comma-separated list of available engines.
func (r *REPL) getEngineList() string {
	return strings.Join(sortedKeys(r.registry), ", ")
}

// processLine parses and executes one input line.
// Returns false if the REPL should exit.
func (r *REPL) processLine(input string) bool {
	if input == "exit" || input == "quit" {
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	}
	if strings.HasPrefix(input, ":") {
		return r.processCommand(input)
	}
	r.evalTokens(input)
	return true
}

// processCommand executes a colon command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case ":prec", ":p":
		r.cmdPrecision(args)
	case ":dec", ":d":
		r.cmdDecimal()
	case ":clear", ":c":
		r.cmdClear()
	case ":engine", ":e":
		r.cmdEngine(args)
	case ":help", ":h", ":?":
		r.printHelp()
	case ":quit", ":q", ":exit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %s:help%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// cmdPrecision handles the ":prec" command.
func (r *REPL) cmdPrecision(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Decimal precision: %s%d%s digits\n", ui.ColorCyan(), r.config.Precision, ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || n > config.MaxPrecision {
		fmt.Fprintf(r.out, "%sInvalid precision: %s (0 to %d)%s\n", ui.ColorRed(), args[0], config.MaxPrecision, ui.ColorReset())
		return
	}

	r.config.Precision = uint(n)
	fmt.Fprintf(r.out, "Decimal precision set to %s%d%s digits.\n", ui.ColorGreen(), n, ui.ColorReset())
}

// cmdDecimal toggles decimal display of the top value.
func (r *REPL) cmdDecimal() {
	r.config.DecimalOutput = !r.config.DecimalOutput
	status := "disabled"
	if r.config.DecimalOutput {
		status = fmt.Sprintf("enabled (%d digits)", r.config.Precision)
	}
	fmt.Fprintf(r.out, "Decimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
	if r.config.DecimalOutput && len(r.stack) > 0 {
		r.printStack()
	}
}

// cmdClear empties the stack.
func (r *REPL) cmdClear() {
	r.stack = r.stack[:0]
	fmt.Fprintf(r.out, "Stack cleared.\n")
}

// cmdEngine handles the ":engine" command.
func (r *REPL) cmdEngine(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, name := range sortedKeys(r.registry) {
			marker := "  "
			if name == r.currentEngine {
				marker = ui.ColorGreen() + "► " + ui.ColorReset()
			}
			fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), r.registry[name].Name())
		}
		fmt.Fprintln(r.out)
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", r.getEngineList())
		return
	}

	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), r.registry[name].Name(), ui.ColorReset())
}

// evalTokens applies one line of RPN tokens to the persistent stack.
// Literals are pushed in canonical form, stack words are applied directly,
// and arithmetic words evaluate through the current engine. Processing stops
// at the first error; values consumed so far stay on the stack.
func (r *REPL) evalTokens(line string) {
	tokens, err := calc.Tokenize(line)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	engine, ok := r.registry[r.currentEngine]
	if !ok {
		fmt.Fprintf(r.out, "%sEngine not found: %s%s\n", ui.ColorRed(), r.currentEngine, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	for _, tok := range tokens {
		if err := r.applyToken(ctx, engine, tok); err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			break
		}
	}

	r.printStack()
}

// applyToken advances the stack by one token.
func (r *REPL) applyToken(ctx context.Context, engine calc.Engine, tok calc.Token) error {
	if tok.IsNumber() {
		res, err := engine.Evaluate(ctx, nil, 0, tok.Text)
		if err != nil {
			return err
		}
		r.stack = append(r.stack, res)
		return nil
	}

	switch tok.Text {
	case "dup":
		if err := r.need(1, tok.Text); err != nil {
			return err
		}
		r.stack = append(r.stack, r.stack[len(r.stack)-1])
		return nil
	case "swap":
		if err := r.need(2, tok.Text); err != nil {
			return err
		}
		n := len(r.stack)
		r.stack[n-2], r.stack[n-1] = r.stack[n-1], r.stack[n-2]
		return nil
	case "drop":
		if err := r.need(1, tok.Text); err != nil {
			return err
		}
		r.stack = r.stack[:len(r.stack)-1]
		return nil
	}

	arity := wordArity[tok.Text]
	if err := r.need(arity, tok.Text); err != nil {
		return err
	}

	// Re-evaluate the operands and the word as a minimal expression. The
	// operands are canonical literals, so the engine re-parses them exactly.
	n := len(r.stack)
	parts := make([]string, 0, arity+1)
	for _, v := range r.stack[n-arity:] {
		parts = append(parts, v.String())
	}
	parts = append(parts, tok.Text)

	res, err := engine.Evaluate(ctx, nil, 0, strings.Join(parts, " "))
	if err != nil {
		return err
	}
	r.stack = append(r.stack[:n-arity], res)
	return nil
}

// need reports a stack underflow error when fewer than n values are present.
func (r *REPL) need(n int, word string) error {
	if len(r.stack) < n {
		return fmt.Errorf("stack underflow: %q needs %d value(s), have %d", word, n, len(r.stack))
	}
	return nil
}

// printStack renders the stack bottom to top, with the top value highlighted.
func (r *REPL) printStack() {
	if len(r.stack) == 0 {
		fmt.Fprintf(r.out, "%s(empty stack)%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}

	var b strings.Builder
	for i, v := range r.stack {
		if i > 0 {
			b.WriteString("  ")
		}
		color := ui.ColorCyan()
		if i == len(r.stack)-1 {
			color = ui.ColorGreen()
		}
		b.WriteString(color + truncateValue(v.String()) + ui.ColorReset())
	}
	fmt.Fprintf(r.out, "%s\n", b.String())

	top := r.stack[len(r.stack)-1]
	if r.config.DecimalOutput && !top.IsInteger() {
		if dec, err := top.Decimal(r.config.Precision); err == nil {
			fmt.Fprintf(r.out, "%s≈ %s%s\n", ui.ColorCyan(), truncateValue(dec), ui.ColorReset())
		}
	}
}
