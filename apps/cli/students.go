package main

import (
	"flag"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/student"
)

const studentsPage = "/estudantes"

func studentPage(id string) string { return studentsPage + "/" + id }

// dateFlag is a -flag holding a yyyy-MM-dd date.
type dateFlag struct {
	date core.Date
	set  bool
}

func (d *dateFlag) String() string { return d.date.String() }

func (d *dateFlag) Set(s string) error {
	date, err := core.ParseDate(s)
	if err != nil {
		return err
	}
	d.date, d.set = date, true
	return nil
}

// studentFlags are the fields shared by create and update.
type studentFlags struct {
	fs        *flag.FlagSet
	name      *string
	birth     dateFlag
	gender    *string
	classroom *string
}

func newStudentFlags(fs *flag.FlagSet) *studentFlags {
	f := &studentFlags{fs: fs}
	f.name = fs.String("name", "", "The student's full name.")
	fs.Var(&f.birth, "birth", "Birth date (yyyy-MM-dd).")
	f.gender = fs.String("gender", "", "Masculino|Feminino|Não informado (or M|F|N).")
	f.classroom = fs.String("classroom", "", "The classroom ID.")
	return f
}

// apply overlays the flags given on the command line on form.
func (f *studentFlags) apply(form student.Form) (student.Form, error) {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			form.Name = *f.name
		case "birth":
			form.BirthDate = f.birth.date
		case "gender":
			var code student.GenderCode
			if code, err = student.ParseGender(*f.gender); err == nil {
				form.Gender = code
			}
		case "classroom":
			form.ClassroomID = *f.classroom
		}
	})
	return form, err
}

func (cli *commandLine) students(args []string) error {
	sub, args, err := cli.subcommand(args,
		"students search [-name NOME] [-classroom ID] [-gender M|F|N] [-born-from DATA] [-born-to DATA] [-page N] [-size N]",
		"students show ID",
		"students create -name NOME -birth yyyy-MM-dd -gender M|F|N -classroom ID",
		"students update ID [-name NOME] [-birth yyyy-MM-dd] [-gender M|F|N] [-classroom ID]",
		"students delete ID",
	)
	if err != nil {
		return err
	}
	if err := cli.visit(studentsPage); err != nil {
		return err
	}

	switch sub {
	case "search":
		fs := cli.newFlagSet("students search")
		name := fs.String("name", "", "Part of the student's name.")
		classroomID := fs.String("classroom", "", "The classroom ID.")
		gender := fs.String("gender", "", "M|F|N.")
		var bornFrom, bornTo dateFlag
		fs.Var(&bornFrom, "born-from", "Born on or after (yyyy-MM-dd).")
		fs.Var(&bornTo, "born-to", "Born on or before (yyyy-MM-dd).")
		page := fs.Int("page", 1, "The page to show, starting at 1.")
		size := fs.Int("size", core.DefaultPageSize, "The page size.")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		filter := student.Filter{Name: *name, ClassroomID: *classroomID, BornFrom: bornFrom.date, BornTo: bornTo.date}
		if *gender != "" {
			code, err := student.ParseGender(*gender)
			if err != nil {
				return err
			}
			filter.Gender = code
		}
		n := *page - 1
		cli.search.Clear()
		state, err := cli.search.Search(cli.ctx, student.SearchOptions{Filter: filter, Page: &n, Size: *size})
		if err != nil {
			return fail(err, "")
		}
		printStudents(cli.out, *state.Result)
		return nil

	case "show":
		fs := cli.newFlagSet("students show")
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		if err := cli.visit(studentPage(id)); err != nil {
			return err
		}
		s, err := cli.studentSvc.Get(cli.ctx, id)
		if err != nil {
			return fail(err, core.NoStudentsMsg)
		}
		printStudent(cli.out, s)
		return nil

	case "create":
		fs := cli.newFlagSet("students create")
		flags := newStudentFlags(fs)
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		form, err := flags.apply(student.Form{})
		if err != nil {
			return err
		}
		var created student.Student
		var dialog core.Dialog[student.Student]
		dialog.Open(nil)
		err = dialog.Submit(func() (err error) {
			created, err = cli.studentSvc.Create(cli.ctx, form)
			return err
		})
		if err != nil {
			return fail(err, core.StudentCreateErrMsg)
		}
		cli.println(core.StudentCreatedMsg)
		cli.router.navigate(studentPage(created.ID))
		cli.printf("%s %s\n", created.Name, cli.router.path())
		return nil

	case "update":
		fs := cli.newFlagSet("students update")
		flags := newStudentFlags(fs)
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		current, err := cli.studentSvc.Get(cli.ctx, id)
		if err != nil {
			return fail(err, core.StudentUpdateErrMsg)
		}
		form, err := flags.apply(student.FormOf(current))
		if err != nil {
			return err
		}
		var dialog core.Dialog[student.Student]
		dialog.Open(&current)
		err = dialog.Submit(func() (err error) {
			current, err = cli.studentSvc.Update(cli.ctx, dialog.Editing.ID, form)
			return err
		})
		if err != nil {
			return fail(err, core.StudentUpdateErrMsg)
		}
		cli.println(core.StudentUpdatedMsg)
		return nil

	case "delete":
		fs := cli.newFlagSet("students delete")
		id, err := parseWithID(fs, args)
		if err != nil {
			return err
		}
		if err := cli.studentSvc.Delete(cli.ctx, id); err != nil {
			return fail(err, core.StudentDeleteErrMsg)
		}
		cli.println(core.StudentDeletedMsg)
		return nil
	}
	return cli.unknownSubcommand("students", sub)
}
