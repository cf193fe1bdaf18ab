package main

import (
	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/report"
)

const reportsPage = "/relatorios"

func (cli *commandLine) report(args []string) error {
	sub, args, err := cli.subcommand(args,
		"report attendance -classroom ID [-from yyyy-MM-dd] [-to yyyy-MM-dd] [-dir DIR] [-preview N]",
		"report students -classroom ID [-from yyyy-MM-dd] [-to yyyy-MM-dd] [-dir DIR] [-preview N]",
	)
	if err != nil {
		return err
	}
	if sub != "attendance" && sub != "students" {
		return cli.unknownSubcommand("report", sub)
	}
	if err := cli.visit(reportsPage); err != nil {
		return err
	}

	fs := cli.newFlagSet("report " + sub)
	classroomID := fs.String("classroom", "", "The classroom ID.")
	var from, to dateFlag
	fs.Var(&from, "from", "Start date (yyyy-MM-dd).")
	fs.Var(&to, "to", "End date (yyyy-MM-dd).")
	dir := fs.String("dir", cli.conf.ReportDir, "Where to save the spreadsheet.")
	preview := fs.Int("preview", 0, "Print the first N rows of the spreadsheet.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	r := report.Range{ClassroomID: *classroomID, Start: from.date, End: to.date}
	var file report.File
	if sub == "attendance" {
		file, err = cli.reportSvc.AttendanceReport(cli.ctx, r)
	} else {
		file, err = cli.reportSvc.StudentsReport(cli.ctx, r)
	}
	if err != nil {
		return fail(err, "")
	}
	path, err := file.Save(*dir)
	if err != nil {
		return err
	}
	cli.println(core.ReportSuccessMsg)
	cli.println(path)

	if *preview > 0 {
		// header row plus N data rows
		sheet, rows, err := report.Preview(file.Data, *preview+1)
		if err != nil {
			return err
		}
		printPreview(cli.out, sheet, rows)
	}
	return nil
}
