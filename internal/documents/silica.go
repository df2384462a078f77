package documents

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

const silicaBoilerplate = "This written exposure control plan is maintained under 29 CFR 1926.1153. " +
	"Employees performing the tasks listed above shall use the engineering controls, work practices " +
	"and respiratory protection described in this plan. Dry sweeping and compressed air cleaning of " +
	"silica dust are prohibited where wet methods or HEPA vacuums are feasible. A competent person " +
	"shall make frequent inspections of the job site, materials and equipment."

// SilicaPlanDocument is the exposure control plan for one job.
type SilicaPlanDocument struct {
	Job  models.Job
	Plan models.SilicaPlan
}

func (d SilicaPlanDocument) Kind() models.DocumentKind { return models.DocumentSilicaPlan }
func (d SilicaPlanDocument) JobID() uuid.UUID          { return d.Job.ID }
func (d SilicaPlanDocument) GeneratedAt() time.Time    { return d.Plan.SubmittedAt }
func (d SilicaPlanDocument) Title() string             { return "Silica Exposure Control Plan" }

func (d SilicaPlanDocument) write(p *page) {
	jobBlock(p, d.Job)

	p.section("Employees")
	for _, e := range d.Plan.Employees {
		if e = strings.TrimSpace(e); e != "" {
			p.bullet(e)
		}
	}

	p.section("Tasks")
	for _, wt := range d.Plan.WorkTypes {
		p.bullet(humanize(wt))
	}

	p.section("Exposure Controls")
	p.question("Water delivery integrated", d.Plan.WaterDelivery)
	p.field("Work area", humanize(d.Plan.WorkArea))
	p.field("Cutting time per shift", cuttingTimeLabel(d.Plan.CuttingTime))
	p.question("Respirator required", d.Plan.RespiratorRequired)
	if d.Plan.SafetyNotes != "" {
		p.field("Safety notes", d.Plan.SafetyNotes)
	}

	p.section("Compliance")
	p.paragraph(silicaBoilerplate)

	p.signature("Competent Person", d.Plan.SignerName, d.Plan.Signature, d.Plan.SubmittedAt)
}

func cuttingTimeLabel(bucket string) string {
	switch bucket {
	case models.CuttingUnderFourHours:
		return "4 hours or less"
	case models.CuttingOverFourHours:
		return "More than 4 hours"
	}
	return bucket
}

// jobBlock prints the job identification rows shared by every form.
func jobBlock(p *page, job models.Job) {
	p.section("Job")
	p.field("Job number", job.JobNumber)
	p.field("Customer", job.CustomerName)
	p.field("Contact", job.CustomerContact)
	p.field("Location", job.Location)
	if job.Description != "" {
		p.field("Description", job.Description)
	}
	if job.ScheduledDate.Valid {
		p.field("Scheduled", job.ScheduledDate.Time.UTC().Format(dateLayout))
	}
}
