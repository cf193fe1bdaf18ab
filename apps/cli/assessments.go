package main

import (
	"flag"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
)

const (
	measurementSavedMsg   = "Medidas corporais salvas com sucesso!"
	measurementDeletedMsg = "Medidas corporais removidas com sucesso!"
	testSavedMsg          = "Testes físicos salvos com sucesso!"
	testDeletedMsg        = "Testes físicos removidos com sucesso!"
)

// subject fetches the student an assessment is entered for.
func (cli *commandLine) subject(id string) (assessment.Subject, error) {
	if err := cli.visit(studentPage(id)); err != nil {
		return assessment.Subject{}, err
	}
	s, err := cli.studentSvc.Get(cli.ctx, id)
	if err != nil {
		return assessment.Subject{}, fail(err, core.NoStudentsMsg)
	}
	return s.Subject(), nil
}

// assessmentArgs parses "add -student ID ...", "update ID ..." and "delete ID".
func (cli *commandLine) assessmentArgs(sub string, fs *flag.FlagSet, args []string) (id, studentID string, err error) {
	switch sub {
	case "add":
		sid := fs.String("student", "", "The student ID.")
		if err = parseFlags(fs, args); err != nil {
			return "", "", err
		}
		if *sid == "" {
			fs.Usage()
			return "", "", errHelp
		}
		return "", *sid, nil
	case "update", "delete":
		id, err = parseWithID(fs, args)
		return id, "", err
	}
	return "", "", cli.unknownSubcommand(fs.Name(), sub)
}

func (cli *commandLine) measurements(args []string) error {
	sub, args, err := cli.subcommand(args,
		"measurements add -student ID -weight KG -height CM -waist CM [-date yyyy-MM-dd]",
		"measurements update ID -weight KG -height CM -waist CM [-date yyyy-MM-dd]",
		"measurements delete ID",
	)
	if err != nil {
		return err
	}
	if err := cli.visit(studentsPage); err != nil {
		return err
	}

	fs := cli.newFlagSet("measurements")
	var date dateFlag
	fs.Var(&date, "date", "Collection date (yyyy-MM-dd), today by default.")
	weight := fs.Float64("weight", 0, "Weight in kg.")
	height := fs.Float64("height", 0, "Height in cm.")
	waist := fs.Float64("waist", 0, "Waist in cm.")
	id, studentID, err := cli.assessmentArgs(sub, fs, args)
	if err != nil {
		return err
	}
	form := assessment.MeasurementForm{CollectedAt: date.date, Weight: *weight, Height: *height, Waist: *waist}

	var m assessment.BodyMeasurement
	switch sub {
	case "add":
		subj, err := cli.subject(studentID)
		if err != nil {
			return err
		}
		if m, err = cli.assessmentSvc.AddMeasurement(cli.ctx, subj, form); err != nil {
			return fail(err, "")
		}
	case "update":
		if m, err = cli.assessmentSvc.UpdateMeasurement(cli.ctx, id, form); err != nil {
			return fail(err, "")
		}
	case "delete":
		if err := cli.assessmentSvc.DeleteMeasurement(cli.ctx, id); err != nil {
			return fail(err, "")
		}
		cli.println(measurementDeletedMsg)
		return nil
	}
	cli.println(measurementSavedMsg)
	printMeasurements(cli.out, []assessment.BodyMeasurement{m})
	return nil
}

func (cli *commandLine) physicalTests(args []string) error {
	sub, args, err := cli.subcommand(args,
		"tests add -student ID -six M -flex CM -rml N -twenty S -throw CM [-date yyyy-MM-dd]",
		"tests update ID -six M -flex CM -rml N -twenty S -throw CM [-date yyyy-MM-dd]",
		"tests delete ID",
	)
	if err != nil {
		return err
	}
	if err := cli.visit(studentsPage); err != nil {
		return err
	}

	fs := cli.newFlagSet("tests")
	var date dateFlag
	fs.Var(&date, "date", "Collection date (yyyy-MM-dd), today by default.")
	six := fs.Float64("six", 0, "Six minutes run, in meters.")
	flex := fs.Float64("flex", 0, "Sit and reach, in cm.")
	rml := fs.Float64("rml", 0, "Sit-ups in one minute.")
	twenty := fs.Float64("twenty", 0, "Twenty meters sprint, in seconds.")
	throw := fs.Float64("throw", 0, "Two kg medicine ball throw, in cm.")
	id, studentID, err := cli.assessmentArgs(sub, fs, args)
	if err != nil {
		return err
	}
	form := assessment.PhysicalTestForm{
		CollectedAt:  date.date,
		SixMinutes:   *six,
		Flex:         *flex,
		RML:          *rml,
		TwentyMeters: *twenty,
		TwoKgThrow:   *throw,
	}

	var pt assessment.PhysicalTest
	switch sub {
	case "add":
		subj, err := cli.subject(studentID)
		if err != nil {
			return err
		}
		if pt, err = cli.assessmentSvc.AddPhysicalTest(cli.ctx, subj, form); err != nil {
			return fail(err, "")
		}
	case "update":
		if pt, err = cli.assessmentSvc.UpdatePhysicalTest(cli.ctx, id, form); err != nil {
			return fail(err, "")
		}
	case "delete":
		if err := cli.assessmentSvc.DeletePhysicalTest(cli.ctx, id); err != nil {
			return fail(err, "")
		}
		cli.println(testDeletedMsg)
		return nil
	}
	cli.println(testSavedMsg)
	printPhysicalTests(cli.out, []assessment.PhysicalTest{pt})
	return nil
}
