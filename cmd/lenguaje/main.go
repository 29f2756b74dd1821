// Command lenguaje is the CLI entry point for the Language interpreter.
// It is a thin external collaborator over the lexer/parser/evaluator
// core: `lenguaje` with no arguments starts an interactive REPL,
// `lenguaje <file>` evaluates a source file, and `lenguaje server <port>`
// starts a REPL over TCP, one independent session per connection.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/pegadro/LPP/evaluator"
	"github.com/pegadro/LPP/lexer"
	"github.com/pegadro/LPP/object"
	"github.com/pegadro/LPP/parser"
	"github.com/pegadro/LPP/repl"
)

const version = "v1.0.0"

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
		case "--version", "-v":
			showVersion()
		case "server":
			if len(os.Args) < 3 {
				redColor.Fprintln(os.Stderr, "[ERROR DE USO] Falta el puerto. Uso: lenguaje server <puerto>")
				os.Exit(1)
			}
			startServer(os.Args[2])
		default:
			runFile(arg)
		}
		return
	}

	repl.New().Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("lenguaje - interprete del Lenguaje")
	cyanColor.Println()
	cyanColor.Println("USO:")
	cyanColor.Println("  lenguaje                 Inicia el REPL interactivo")
	cyanColor.Println("  lenguaje <archivo>       Ejecuta un archivo fuente")
	cyanColor.Println("  lenguaje server <puerto> Inicia un REPL por TCP")
	cyanColor.Println("  lenguaje --help          Muestra esta ayuda")
	cyanColor.Println("  lenguaje --version       Muestra la version")
}

func showVersion() {
	cyanColor.Printf("lenguaje %s\n", version)
}

func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[ERROR DE ARCHIVO] No se pudo leer '%s': %v\n", fileName, err)
		os.Exit(1)
	}

	if !runSource(os.Stdout, string(source)) {
		os.Exit(1)
	}
}

// runSource parses and evaluates source, printing to out. It reports
// whether execution succeeded (no parse errors, no runtime error object,
// no panic).
func runSource(out *os.File, source string) (ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[ERROR DE EJECUCION] %v\n", recovered)
			ok = false
		}
	}()

	p := parser.New(lexer.New(source))
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(os.Stderr, "[ERROR DE SINTAXIS] %s\n", e)
		}
		return false
	}

	env := object.NewEnvironment()
	result := evaluator.Evaluate(program, env)

	if result == nil {
		return true
	}

	if result.Type() == object.ERROR_OBJ {
		redColor.Fprintln(os.Stderr, result.Inspect())
		return false
	}

	if result.Type() != object.NULL_OBJ {
		fmt.Fprintln(out, result.Inspect())
	}

	return true
}

func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[ERROR DE SERVIDOR] No se pudo escuchar en :%s: %v\n", port, err)
		os.Exit(1)
	}
	defer listener.Close()

	cyanColor.Printf("Escuchando REPL en :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[ERROR DE SERVIDOR] No se pudo aceptar la conexion: %v\n", err)
			continue
		}
		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("Nueva conexion desde %s\n", conn.RemoteAddr())
	repl.New().Start(conn, conn)
	cyanColor.Printf("Conexion cerrada desde %s\n", conn.RemoteAddr())
}
