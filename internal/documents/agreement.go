package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

const (
	agreementBoilerplate = "The undersigned confirms that the work itemized above was performed at the " +
		"location listed and that the work area was left in acceptable condition. Standby time is billed " +
		"separately from contracted work. Any concealed utilities, rebar or post-tension cable not disclosed " +
		"before work began are the responsibility of the customer."

	contactNotOnSiteNotice = "The customer contact was not on site at completion. This job was closed by " +
		"the operator without a customer signature."

	releaseBoilerplate = "The customer acknowledges that concrete sawing and drilling may cause vibration, " +
		"dust, water runoff and noise, and that hidden objects within the concrete may be cut. The customer " +
		"releases the contractor from liability for damage to embedded items not identified before work " +
		"began, and for cosmetic spalling at cut edges within normal industry tolerance."
)

// AgreementDocument is the completion agreement with itemized work.
type AgreementDocument struct {
	Job          models.Job
	OperatorName string
	WorkEntries  []models.WorkEntry
	StandbyLogs  []models.StandbyLog
}

func (d AgreementDocument) Kind() models.DocumentKind { return models.DocumentAgreement }
func (d AgreementDocument) JobID() uuid.UUID          { return d.Job.ID }
func (d AgreementDocument) GeneratedAt() time.Time    { return completionTime(d.Job) }
func (d AgreementDocument) Title() string             { return "Job Completion Agreement" }

func (d AgreementDocument) write(p *page) {
	jobBlock(p, d.Job)
	if d.OperatorName != "" {
		p.field("Operator", d.OperatorName)
	}
	if d.Job.ArrivalTime.Valid {
		p.field("Arrived", d.Job.ArrivalTime.Time.UTC().Format(stampLayout))
	}

	p.section("Work Performed")
	if len(d.WorkEntries) == 0 {
		p.paragraph("No itemized work was recorded.")
	}
	for _, e := range d.WorkEntries {
		workEntryBlock(p, e)
	}

	var standby []models.StandbyLog
	for _, l := range d.StandbyLogs {
		if l.Status == models.StandbyCompleted {
			standby = append(standby, l)
		}
	}
	if len(standby) > 0 {
		p.section("Standby")
		rows := make([][]string, 0, len(standby))
		for _, l := range standby {
			rows = append(rows, []string{
				l.StartedAt.UTC().Format(stampLayout),
				l.DurationHours.StringFixed(2),
				l.Reason,
			})
		}
		p.table([]string{"Started", "Hours", "Reason"}, []float64{0.38, 0.14, 0.48}, rows)
	}

	p.section("Acknowledgement")
	p.paragraph(agreementBoilerplate)
	signOff(p, d.Job, "Customer Signature")
}

// LiabilityReleaseDocument is the release signed alongside completion.
type LiabilityReleaseDocument struct {
	Job models.Job
}

func (d LiabilityReleaseDocument) Kind() models.DocumentKind { return models.DocumentLiabilityRelease }
func (d LiabilityReleaseDocument) JobID() uuid.UUID          { return d.Job.ID }
func (d LiabilityReleaseDocument) GeneratedAt() time.Time    { return completionTime(d.Job) }
func (d LiabilityReleaseDocument) Title() string             { return "Liability Release" }

func (d LiabilityReleaseDocument) write(p *page) {
	jobBlock(p, d.Job)
	p.section("Release")
	p.paragraph(releaseBoilerplate)
	signOff(p, d.Job, "Customer Signature")
}

func signOff(p *page, job models.Job, caption string) {
	if job.ContactNotOnSite && !job.CompletionSignedAt.Valid {
		p.section("Contact Not On Site")
		p.paragraph(contactNotOnSiteNotice)
		if job.CompletedAt.Valid {
			p.field("Closed", job.CompletedAt.Time.UTC().Format(stampLayout))
		}
		return
	}
	p.signature(caption, job.CompletionSignerName.String, job.CompletionSignature.String, job.CompletionSignedAt.Time)
}

func completionTime(job models.Job) time.Time {
	if job.CompletionSignedAt.Valid {
		return job.CompletionSignedAt.Time
	}
	if job.CompletedAt.Valid {
		return job.CompletedAt.Time
	}
	return job.UpdatedAt
}

// workEntryBlock prints one entry with its kind-specific breakdown.
func workEntryBlock(p *page, e models.WorkEntry) {
	heading := e.ItemName
	if e.Quantity != 0 {
		heading = fmt.Sprintf("%s (qty %s)", e.ItemName, formatNumber(e.Quantity))
	}
	p.field(heading, e.Notes)

	switch d := e.Details.(type) {
	case models.HoleSpec:
		rows := make([][]string, 0, len(d.Holes))
		for _, h := range d.Holes {
			rows = append(rows, []string{
				fmt.Sprintf("%d", h.Quantity),
				formatNumber(h.DiameterIn) + "\"",
				formatNumber(h.DepthIn) + "\"",
			})
		}
		p.table([]string{"Holes", "Diameter", "Depth"}, []float64{0.2, 0.4, 0.4}, rows)
		p.field("Total", fmt.Sprintf("%d holes, %s inches drilled", d.TotalHoles(), formatNumber(d.TotalInches())))
	case models.CutSpec:
		rows := make([][]string, 0, len(d.Cuts))
		for _, c := range d.Cuts {
			rows = append(rows, []string{formatNumber(c.LinearFeet), formatNumber(c.DepthIn) + "\""})
		}
		p.table([]string{"Linear feet", "Depth"}, []float64{0.5, 0.5}, rows)
		p.field("Total", formatNumber(d.TotalLinearFeet())+" linear feet")
	case models.GeneralSpec:
		if d.DurationHours > 0 {
			p.field("Duration", formatNumber(d.DurationHours)+" hours")
		}
		if len(d.Equipment) > 0 {
			names := make([]string, 0, len(d.Equipment))
			for _, eq := range d.Equipment {
				names = append(names, fmt.Sprintf("%s (%s h)", eq.Name, formatNumber(eq.Hours)))
			}
			p.field("Equipment", strings.Join(names, ", "))
		}
	}
	p.pdf.Ln(1.5)
}
