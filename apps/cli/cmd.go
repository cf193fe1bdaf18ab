package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp    = errors.New("help provided")
	errCrashed = errors.New("unexpected failure")
)

// notice is a command failure printed as msg. Its cause stays available to errors.Is/As.
type notice struct {
	err error
	msg string
}

func fail(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &notice{err: err, msg: fallback}
}

func (n *notice) Error() string { return n.err.Error() }
func (n *notice) Unwrap() error { return n.err }
func (n *notice) UserMessage() string { return core.Notify(n.err, n.msg) }

type userError string

func (e userError) Error() string { return string(e) }
func (e userError) UserMessage() string { return string(e) }

const (
	errNotLoggedIn = userError("Você não está autenticado. Use `aurora login -username USUARIO`.")
	errUnavailable = userError("Servidor indisponível. Tente novamente mais tarde.")
)

type command struct {
	name  string
	usage string
	// session commands bootstrap the session first.
	session bool
	run     func(cli *commandLine, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{name: "login", usage: "login -username USUARIO - entrar (a senha é pedida em seguida)", session: true, run: (*commandLine).login},
		{name: "logout", usage: "logout - sair", session: true, run: (*commandLine).logout},
		{name: "whoami", usage: "whoami - usuário autenticado", session: true, run: (*commandLine).whoami},
		{name: "health", usage: "health [-wait] - disponibilidade do servidor", run: (*commandLine).health},
		{name: "open", usage: "open PATH - resolver uma página (ex: /turmas/ID)", session: true, run: (*commandLine).open},
		{name: "classrooms", usage: "classrooms list|show|create|rename|delete - turmas", session: true, run: (*commandLine).classrooms},
		{name: "students", usage: "students search|show|create|update|delete - estudantes", session: true, run: (*commandLine).students},
		{name: "attendance", usage: "attendance show|take -classroom ID - chamada do dia", session: true, run: (*commandLine).attendance},
		{name: "measurements", usage: "measurements add|update|delete - medidas corporais", session: true, run: (*commandLine).measurements},
		{name: "tests", usage: "tests add|update|delete - testes físicos", session: true, run: (*commandLine).physicalTests},
		{name: "report", usage: "report attendance|students -classroom ID - relatórios", session: true, run: (*commandLine).report},
		{name: "consent", usage: "consent grant|revoke|status - consentimento de cookies", run: (*commandLine).consent},
		{name: "theme", usage: "theme [light|dark|system] - tema da interface", run: (*commandLine).theme},
	}
}

type commandLine struct {
	*app
	ctx context.Context
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	for _, cmd := range commands {
		fmt.Fprintf(cli.out, "  %s\n", cmd.usage)
	}
}

func (cli *commandLine) run(args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = cli.recovered(r)
		}
	}()

	if len(args) < 2 || args[1] == "help" || args[1] == "-h" || args[1] == "--help" {
		cli.printUsage()
		return errHelp
	}
	for _, cmd := range commands {
		if cmd.name != args[1] {
			continue
		}
		if cmd.session {
			cli.bootstrap(cli.ctx)
		}
		return cmd.run(cli, args[2:])
	}

	if s := suggest(args[1]); s != "" {
		fmt.Fprintf(cli.out, "Comando desconhecido %q. Você quis dizer %q?\n", args[1], s)
	} else {
		cli.printUsage()
	}
	return errHelp
}

// recovered turns a panic into the generic failure screen, as the last line of defense.
func (cli *commandLine) recovered(r interface{}) error {
	args := []interface{}{errors.Errorf("%v", r), map[string]interface{}{"stack": string(debug.Stack())}}
	if usr, ok := cli.session.User(); ok {
		args = append(args, usr)
	}
	cli.logger.Error(fmt.Sprintf("panic: %v", r), args...)
	fmt.Fprintln(cli.out, "Algo deu errado.")
	fmt.Fprintln(cli.out, "  - Voltar ao início: aurora open /")
	fmt.Fprintln(cli.out, "  - Recarregar: execute o comando novamente")
	return errCrashed
}

// suggest returns the closest known command to name, or "" when none is close enough.
func suggest(name string) string {
	best, bestRatio := "", 0.0
	for _, cmd := range commands {
		m := difflib.NewMatcher(strings.Split(name, ""), strings.Split(cmd.name, ""))
		if m.QuickRatio() < 0.6 {
			continue
		}
		if ratio := m.Ratio(); ratio > bestRatio {
			best, bestRatio = cmd.name, ratio
		}
	}
	if bestRatio < 0.6 {
		return ""
	}
	return best
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// subcommand splits "CMD SUB [args...]"; an empty sub prints usage.
func (cli *commandLine) subcommand(args []string, usage ...string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(cli.out, "Usage:")
		for _, u := range usage {
			fmt.Fprintf(cli.out, "  %s\n", u)
		}
		return "", nil, errHelp
	}
	return args[0], args[1:], nil
}

// visit navigates to path and refuses to go on when the guard redirected to the login page.
func (cli *commandLine) visit(path string) error {
	cli.router.navigate(path)
	if cli.router.path() == session.LoginPath {
		return errNotLoggedIn
	}
	return nil
}

// parseWithID parses args holding one ID, given either before or after the flags.
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := parseFlags(fs, args); err != nil {
		return "", err
	}
	if id == "" {
		id = fs.Arg(0)
	}
	if id == "" {
		fs.Usage()
		return "", errHelp
	}
	return id, nil
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) println(args ...interface{}) {
	fmt.Fprintln(cli.out, args...)
}
