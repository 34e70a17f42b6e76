package cli

import (
	"fmt"
	"io"

	"github.com/careerkey/portal/internal/client/services"
)

// renderOutcome prints a verification result. A success shows the full
// record in sections; a failure shows the backend's message and nothing
// else.
func (a *App) renderOutcome(o *services.Outcome) {
	if !o.Success {
		fmt.Fprintln(a.out, "== Verification failed ==")
		fmt.Fprintln(a.out, o.Message)
		return
	}

	fmt.Fprintln(a.out, "== Degree verified ==")
	if o.Message != "" {
		fmt.Fprintln(a.out, o.Message)
	}
	if o.Record == nil {
		return
	}
	r := o.Record

	fmt.Fprintln(a.out, "Student")
	printField(a.out, "Name", r.StudentName)
	printField(a.out, "CNIC", r.StudentCNIC)

	fmt.Fprintln(a.out, "Academic")
	printField(a.out, "University", r.UniversityName)
	printField(a.out, "Program", r.Program)
	printField(a.out, "Roll number", r.RollNumber)
	printField(a.out, "Passing year", r.PassingYear.String())
	printField(a.out, "CGPA", r.CGPA.String())
	printField(a.out, "Request date", r.RequestDate)

	fmt.Fprintln(a.out, "Blockchain")
	printField(a.out, "Transaction", r.TransactionHash)
	printField(a.out, "Block", r.BlockNumber.String())
	printField(a.out, "Degree asset", r.AssetURL())
}

func printField(w io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-13s %s\n", name+":", value)
}
