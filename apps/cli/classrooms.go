package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/classroom"
)

const classroomsPage = "/turmas"

func classroomPage(id string) string { return classroomsPage + "/" + id }

func (cli *commandLine) classrooms(args []string) error {
	sub, args, err := cli.subcommand(args,
		"classrooms list",
		"classrooms show ID",
		"classrooms create -name NOME",
		"classrooms rename ID -name NOME",
		"classrooms delete ID",
	)
	if err != nil {
		return err
	}
	if err := cli.visit(classroomsPage); err != nil {
		return err
	}

	switch sub {
	case "list":
		list, err := cli.cache.LoadClassrooms(cli.ctx)
		if err != nil {
			return fail(err, "")
		}
		printClassrooms(cli.out, list)
		return nil

	case "show":
		fs := cli.newFlagSet("classrooms show")
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		cls, err := cli.loadClassroom(id)
		if err != nil {
			return err
		}
		printClassroom(cli.out, cls, cli.cache.Attendance())
		return nil

	case "create":
		fs := cli.newFlagSet("classrooms create")
		name := fs.String("name", "", "The classroom name.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		var created classroom.Classroom
		var dialog core.Dialog[classroom.Classroom]
		dialog.Open(nil)
		err := dialog.Submit(func() (err error) {
			created, err = cli.classroomSvc.Create(cli.ctx, *name)
			return err
		})
		if err != nil {
			return fail(err, core.ClassroomCreateErrMsg)
		}
		cli.println(core.ClassroomCreatedMsg)
		cli.router.navigate(classroomPage(created.ID))
		cli.printf("%s %s\n", created.Name, cli.router.path())
		return nil

	case "rename":
		fs := cli.newFlagSet("classrooms rename")
		name := fs.String("name", "", "The new classroom name.")
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		cls, err := cli.classroomSvc.Get(cli.ctx, id)
		if err != nil {
			return fail(err, core.ClassroomUpdateErrMsg)
		}
		var dialog core.Dialog[classroom.Classroom]
		dialog.Open(&cls)
		err = dialog.Submit(func() (err error) {
			cls, err = cli.classroomSvc.Rename(cli.ctx, dialog.Editing.ID, *name)
			return err
		})
		if err != nil {
			return fail(err, core.ClassroomUpdateErrMsg)
		}
		cli.println(core.ClassroomUpdatedMsg)
		cli.printf("%s %s\n", cls.Name, classroomPage(cls.ID))
		return nil

	case "delete":
		fs := cli.newFlagSet("classrooms delete")
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		cls, err := cli.classroomSvc.Get(cli.ctx, id)
		if err != nil {
			return fail(err, core.ClassroomDeleteErrMsg)
		}
		if err := cli.classroomSvc.Delete(cli.ctx, cls); err != nil {
			var pErr *core.PolicyError
			if errors.As(err, &pErr) {
				cli.println(pErr.Title)
			}
			return fail(err, core.ClassroomDeleteErrMsg)
		}
		cli.println(core.ClassroomDeletedMsg)
		return nil
	}
	return cli.unknownSubcommand("classrooms", sub)
}

// loadClassroom navigates to the classroom page and loads it with today's roll.
func (cli *commandLine) loadClassroom(id string) (classroom.Classroom, error) {
	if strings.TrimSpace(id) == "" {
		return classroom.Classroom{}, errHelp
	}
	if err := cli.visit(classroomPage(id)); err != nil {
		return classroom.Classroom{}, err
	}
	cls, err := cli.cache.LoadClassroom(cli.ctx, cli.router.path())
	if err != nil {
		return classroom.Classroom{}, fail(err, core.NoClassroomsMsg)
	}
	return cls, nil
}

func (cli *commandLine) unknownSubcommand(cmd, sub string) error {
	cli.printf("Subcomando desconhecido %q para %s. Use `aurora %s` para ver as opções.\n", sub, cmd, cmd)
	return errHelp
}
