package models

type DocumentKind string

const (
	DocumentSilicaPlan       DocumentKind = "silica_plan"
	DocumentAgreement        DocumentKind = "agreement"
	DocumentLiabilityRelease DocumentKind = "liability_release"
)

func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentSilicaPlan, DocumentAgreement, DocumentLiabilityRelease:
		return true
	}
	return false
}

// Singleton reports whether at most one record of this kind may exist per job.
func (k DocumentKind) Singleton() bool {
	return k == DocumentSilicaPlan
}
