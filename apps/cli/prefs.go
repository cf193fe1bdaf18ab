package main

import (
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/storage/prefs"
)

func (cli *commandLine) consent(args []string) error {
	sub, _, err := cli.subcommand(args,
		"consent grant - lembrar a sessão entre execuções",
		"consent revoke - esquecer a sessão e os cookies salvos",
		"consent status",
	)
	if err != nil {
		return err
	}
	switch sub {
	case "grant":
		if err := cli.prefs.SetConsent(true); err != nil {
			return errors.Wrap(err, "saving consent")
		}
		cli.println("Consentimento concedido.")
		return nil
	case "revoke":
		if err := cli.prefs.SetConsent(false); err != nil {
			return errors.Wrap(err, "saving consent")
		}
		if err := cli.jar.Clear(); err != nil {
			return errors.Wrap(err, "clearing cookies")
		}
		cli.println("Consentimento revogado.")
		return nil
	case "status":
		if cli.prefs.HasConsent() {
			cli.println("Consentimento concedido.")
		} else {
			cli.println("Consentimento não concedido.")
		}
		return nil
	}
	return cli.unknownSubcommand("consent", sub)
}

func (cli *commandLine) theme(args []string) error {
	if len(args) == 0 {
		cli.println(cli.prefs.Theme())
		return nil
	}
	t, err := prefs.ParseTheme(args[0])
	if err != nil {
		cli.printf("Temas: %v\n", prefs.Themes)
		return err
	}
	if err := cli.prefs.SetTheme(t); err != nil {
		return errors.Wrap(err, "saving theme")
	}
	cli.printf("Tema: %s\n", t)
	return nil
}
