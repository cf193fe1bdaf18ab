package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
)

// parseStatuses reads "ID=STATUS,ID=STATUS" pairs; STATUS is a label or a code (P, L, A).
func parseStatuses(s string) (map[string]classroom.Status, error) {
	out := map[string]classroom.Status{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		id, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, errors.Errorf("invalid status %q, want ID=STATUS", pair)
		}
		st, err := classroom.ParseStatus(value)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(id)] = st
	}
	return out, nil
}

func (cli *commandLine) attendance(args []string) error {
	sub, args, err := cli.subcommand(args,
		"attendance show -classroom ID",
		"attendance take -classroom ID [-set ID=STATUS,...]",
	)
	if err != nil {
		return err
	}

	fs := cli.newFlagSet("attendance " + sub)
	classroomID := fs.String("classroom", "", "The classroom ID.")
	set := fs.String("set", "", "Comma separated ID=STATUS pairs, STATUS being Presente|Atrasado|Ausente (or P|L|A). Unlisted students keep their status.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *classroomID == "" {
		fs.Usage()
		return errHelp
	}

	switch sub {
	case "show":
		cls, err := cli.loadClassroom(*classroomID)
		if err != nil {
			return err
		}
		if !cls.AttendanceTaken {
			cli.printf("%s: chamada de hoje pendente.\n", cls.Name)
			return nil
		}
		printRoll(cli.out, cli.cache.Attendance())
		return nil

	case "take":
		statuses, err := parseStatuses(*set)
		if err != nil {
			return err
		}
		if _, err := cli.loadClassroom(*classroomID); err != nil {
			return err
		}
		if err := cli.cache.StartAttendance(); err != nil {
			return fail(err, core.AttendanceSaveErrMsg)
		}
		for id, st := range statuses {
			if err := cli.cache.SetStatus(id, st); err != nil {
				_ = cli.cache.CancelAttendance(cli.ctx)
				return err
			}
		}
		inserted, err := cli.cache.SaveAttendance(cli.ctx)
		if err != nil {
			return fail(err, core.AttendanceSaveErrMsg)
		}
		if inserted {
			cli.println(core.AttendanceSavedMsg)
		} else {
			cli.println(core.AttendanceUpdatedMsg)
		}
		printRoll(cli.out, cli.cache.Attendance())
		return nil
	}
	return cli.unknownSubcommand("attendance", sub)
}
