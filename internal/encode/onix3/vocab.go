package onix3

import (
	"fmt"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// ONIX codelist 64 (publishing status).
var publishingStatus = map[model.WorkStatus]string{
	model.StatusUnspecified:            "00",
	model.StatusCancelled:              "01",
	model.StatusForthcoming:            "02",
	model.StatusPostponedIndefinitely:  "03",
	model.StatusActive:                 "04",
	model.StatusNoLongerOurProduct:     "05",
	model.StatusOutOfStockIndefinitely: "06",
	model.StatusOutOfPrint:             "07",
	model.StatusInactive:               "08",
	model.StatusUnknown:                "09",
	model.StatusRemaindered:            "10",
	model.StatusWithdrawnFromSale:      "11",
	model.StatusRecalled:               "15",
}

// ONIX codelist 17 (contributor role).
var contributorRole = map[model.ContributionType]string{
	model.ContributionAuthor:         "A01",
	model.ContributionEditor:         "B01",
	model.ContributionTranslator:     "B06",
	model.ContributionPhotographer:   "A13",
	model.ContributionIllustrator:    "A12",
	model.ContributionMusicEditor:    "B25",
	model.ContributionForewordBy:     "A23",
	model.ContributionIntroductionBy: "A24",
	model.ContributionAfterwordBy:    "A19",
	model.ContributionPrefaceBy:      "A15",
}

// ONIX codelist 150 (product form), with codelist 175 detail for digital forms.
var productForm = map[model.PublicationType]string{
	model.PublicationPaperback: "BC",
	model.PublicationHardback:  "BB",
	model.PublicationPDF:       "EB",
	model.PublicationHTML:      "EB",
	model.PublicationXML:       "EB",
	model.PublicationEpub:      "ED",
	model.PublicationMobi:      "ED",
}

var productFormDetail = map[model.PublicationType]string{
	model.PublicationPDF:  "E107",
	model.PublicationHTML: "E105",
	model.PublicationXML:  "E113",
	model.PublicationEpub: "E101",
	model.PublicationMobi: "E127",
}

// ONIX codelist 27 (subject scheme identifier).
var subjectScheme = map[model.SubjectType]string{
	model.SubjectBIC:     "12",
	model.SubjectBISAC:   "10",
	model.SubjectThema:   "93",
	model.SubjectLCC:     "04",
	model.SubjectCustom:  "24",
	model.SubjectKeyword: "20",
}

// VerifyMappings checks every vocabulary table against the canonical enum
// lists, so an enum added without an ONIX mapping fails at startup rather than
// mid-export.
func VerifyMappings() error {
	for _, s := range model.AllWorkStatuses {
		if _, ok := publishingStatus[s]; !ok {
			return fmt.Errorf("onix3: no publishing status code for %q", s)
		}
	}
	for _, c := range model.AllContributionTypes {
		if _, ok := contributorRole[c]; !ok {
			return fmt.Errorf("onix3: no contributor role code for %q", c)
		}
	}
	for _, p := range model.AllPublicationTypes {
		if _, ok := productForm[p]; !ok {
			return fmt.Errorf("onix3: no product form code for %q", p)
		}
	}
	for _, s := range model.AllSubjectTypes {
		if _, ok := subjectScheme[s]; !ok {
			return fmt.Errorf("onix3: no subject scheme code for %q", s)
		}
	}
	return nil
}
