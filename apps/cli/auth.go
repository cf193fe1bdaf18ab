package main

import (
	"os"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/session"
)

const consentWarning = "Atenção: sem consentimento de cookies a sessão não será lembrada. Use `aurora consent grant`."

func (cli *commandLine) login(args []string) error {
	fs := cli.newFlagSet("login")
	uname := fs.String("username", "", "The user's username or email. The password will be prompted next.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *uname == "" {
		fs.Usage()
		return errHelp
	}
	cli.printf("Senha: ")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	cli.println()
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		fs.Usage()
		return errHelp
	}
	if !cli.prefs.HasConsent() {
		cli.println(consentWarning)
	}

	usr, err := cli.session.Login(cli.ctx, core.CleanString(*uname), string(pwd))
	if err != nil {
		return fail(err, core.LoginErrorMsg)
	}
	cli.router.navigate(session.HomePath)
	cli.println(core.LoginSuccessMsg)
	cli.printf("Bem-vindo(a), %s!\n", usr.DisplayName())
	return nil
}

func (cli *commandLine) logout(args []string) error {
	if !cli.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	cli.session.Logout(cli.ctx)
	cli.println(core.LogoutSuccessMsg)
	return nil
}

func (cli *commandLine) whoami(args []string) error {
	if err := cli.visit(session.HomePath); err != nil {
		return err
	}
	usr, _ := cli.session.User()
	cli.printf("%s (%s)\n", usr.Name, usr.Username)
	return nil
}

func (cli *commandLine) health(args []string) error {
	fs := cli.newFlagSet("health")
	wait := fs.Bool("wait", false, "Retry with backoff until the server answers.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	var healthy bool
	if *wait {
		healthy = cli.session.WaitUntilHealthy(cli.ctx, session.HealthOptions{
			Retries: cli.conf.Health.Retries,
			Delay:   cli.conf.Health.Delay,
		})
	} else {
		healthy = cli.systemSvc.Healthy(cli.ctx)
	}
	if !healthy {
		return errUnavailable
	}
	cli.println("Servidor disponível.")
	return nil
}

func (cli *commandLine) open(args []string) error {
	if len(args) != 1 {
		cli.println("Usage:\n  open PATH")
		return errHelp
	}
	resolved, rt, _ := cli.router.resolve(args[0])
	cli.router.navigate(args[0])
	cli.printf("%s %s\n", rt.title, resolved)
	return nil
}
