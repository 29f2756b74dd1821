// Package repl implements the interactive Read-Eval-Print Loop for the
// Language. It is a thin consumer of lexer/parser/evaluator: it owns no
// language semantics of its own, only line editing, history, and colored
// output.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/pegadro/LPP/evaluator"
	"github.com/pegadro/LPP/lexer"
	"github.com/pegadro/LPP/object"
	"github.com/pegadro/LPP/parser"
)

// ExitCommand is the literal line that ends a REPL session, per the
// language's external interface.
const ExitCommand = "salir()"

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `
  _      _____  _____
 | |    |  __ \|  __ \
 | |    | |__) | |__) |
 | |    |  ___/|  ___/
 | |____| |    | |
 |______|_|    |_|
`

const line = "----------------------------------------------------------------"

// Repl drives a single interactive session. Every session gets its own
// Environment: nothing is shared across independent Start calls.
type Repl struct {
	Prompt string
}

// New creates a Repl with the default prompt.
func New() *Repl {
	return &Repl{Prompt: "» "}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintln(w, line)
	greenColor.Fprintln(w, banner)
	blueColor.Fprintln(w, line)
	cyanColor.Fprintln(w, "Bienvenido al interprete del Lenguaje!")
	cyanColor.Fprintln(w, "Escribe una expresion y presiona Enter.")
	cyanColor.Fprintf(w, "Escribe '%s' para salir.\n", ExitCommand)
	blueColor.Fprintln(w, line)
}

// Start runs the REPL loop against reader/writer until the user types
// salir() or sends EOF. Each evaluated line shares a single Environment
// for the lifetime of the session, so `variable`-bound names persist
// across lines the way a top-level program's do.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.printBanner(writer)

	// readline provides line editing and history; it reads input lines
	// from reader and echoes its prompt to writer, so a TCP session reads
	// from its own connection rather than from the process's stdin.
	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "No se pudo iniciar la linea de comandos: %v\n", err)
		return
	}
	defer rl.Close()

	env := object.NewEnvironment()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Hasta luego!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ExitCommand {
			writer.Write([]byte("Hasta luego!\n"))
			return
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line, env)
	}
}

func (r *Repl) evalLine(writer io.Writer, line string, env *object.Environment) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[ERROR DE EJECUCION] %v\n", recovered)
		}
	}()

	p := parser.New(lexer.New(line))
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintln(writer, e)
		}
		return
	}

	result := evaluator.Evaluate(program, env)
	if result == nil {
		return
	}
	if result.Type() == object.NULL_OBJ {
		return
	}

	if result.Type() == object.ERROR_OBJ {
		redColor.Fprintln(writer, result.Inspect())
		return
	}

	yellowColor.Fprintln(writer, result.Inspect())
}
