package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
)

const nameWidth = 32

// fit truncates s to the display width of a table column; accented and wide runes count properly.
func fit(s string) string {
	return runewidth.Truncate(s, nameWidth, "…")
}

func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func printClassrooms(w io.Writer, list []classroom.Classroom) {
	if len(list) == 0 {
		fmt.Fprintln(w, core.NoClassroomsMsg)
		return
	}
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.ID, fit(c.Name), strconv.Itoa(len(c.Students)), yesNo(c.AttendanceTaken)})
	}
	printTable(w, []string{"ID", "TURMA", "ESTUDANTES", "CHAMADA"}, rows)
}

func printClassroom(w io.Writer, c classroom.Classroom, roll []classroom.Attendance) {
	fmt.Fprintf(w, "%s (%s)\n", c.Name, c.ID)
	if c.AttendanceTaken {
		fmt.Fprintf(w, "Chamada de hoje: %d presentes, %d ausentes\n", c.Presences, c.Absences)
	} else {
		fmt.Fprintln(w, "Chamada de hoje: pendente")
	}
	if !c.HasStudents() {
		fmt.Fprintln(w, core.NoStudentsMsg)
		return
	}
	status := make(map[string]classroom.Status, len(roll))
	for _, a := range roll {
		status[a.Student.ID] = a.Status
	}
	rows := make([][]string, 0, len(c.Students))
	for _, s := range c.Students {
		st := "-"
		if v, ok := status[s.ID]; ok {
			st = string(v)
		}
		rows = append(rows, []string{s.ID, fit(s.Name), s.BirthDate.Locale(), st})
	}
	printTable(w, []string{"ID", "ESTUDANTE", "NASCIMENTO", "STATUS"}, rows)
}

func printRoll(w io.Writer, roll []classroom.Attendance) {
	rows := make([][]string, 0, len(roll))
	for _, a := range roll {
		rows = append(rows, []string{a.Student.ID, fit(a.Student.Name), string(a.Status)})
	}
	printTable(w, []string{"ID", "ESTUDANTE", "STATUS"}, rows)
}

func printStudents(w io.Writer, page core.Page[student.Student]) {
	if page.Empty || len(page.Content) == 0 {
		fmt.Fprintln(w, core.NoStudentsMsg)
		return
	}
	today := time.Now()
	rows := make([][]string, 0, len(page.Content))
	for _, s := range page.Content {
		cls := "-"
		if s.Classroom != nil && s.Classroom.Name != "" {
			cls = fit(s.Classroom.Name)
		}
		rows = append(rows, []string{s.ID, fit(s.Name), strconv.Itoa(s.Age(today)), string(s.GenderLabel()), cls})
	}
	printTable(w, []string{"ID", "NOME", "IDADE", "GÊNERO", "TURMA"}, rows)
	fmt.Fprintf(w, "%s (%d estudantes)\n", core.PagerOf(page).Label(), page.TotalElements)
}

func printStudent(w io.Writer, s student.Student) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.ID)
	fmt.Fprintf(w, "Nascimento: %s\n", s.BirthDate.Locale())
	fmt.Fprintf(w, "Gênero: %s\n", s.GenderLabel())
	if s.Classroom != nil {
		fmt.Fprintf(w, "Turma: %s\n", s.Classroom.Name)
	}
	if len(s.BodyMeasurements) > 0 {
		fmt.Fprintln(w, "\nMedidas corporais")
		printMeasurements(w, s.BodyMeasurements)
	}
	if len(s.PhysicalTests) > 0 {
		fmt.Fprintln(w, "\nTestes físicos")
		printPhysicalTests(w, s.PhysicalTests)
	}
}

func printMeasurements(w io.Writer, list []assessment.BodyMeasurement) {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{
			m.ID, m.CollectedAt.Locale(), number(m.Weight), number(m.Height), number(m.Waist),
			number(m.BMI), m.BMIReference, number(m.WaistHeightRatio), m.WaistHeightRatioReference,
		})
	}
	printTable(w, []string{"ID", "DATA", "PESO", "ESTATURA", "CINTURA", "IMC", "REF. IMC", "RCE", "REF. RCE"}, rows)
}

func printPhysicalTests(w io.Writer, list []assessment.PhysicalTest) {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.ID, p.CollectedAt.Locale(),
			number(p.SixMinutes), number(p.Flex), number(p.RML), number(p.TwentyMeters), number(p.TwoKgThrow),
		})
	}
	printTable(w, []string{"ID", "DATA", "6 MIN", "FLEX", "RML", "20 M", "ARREMESSO"}, rows)
}

func printPreview(w io.Writer, sheet string, rows [][]string) {
	fmt.Fprintf(w, "Planilha %q\n", sheet)
	if len(rows) == 0 {
		fmt.Fprintln(w, core.NoResultsMsg)
		return
	}
	printTable(w, rows[0], rows[1:])
}
