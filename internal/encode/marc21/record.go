// Package marc21 renders works as MARC 21 bibliographic records in three
// encodings: the ISO 2709 interchange format, the human-readable mnemonic
// markup, and MARCXML. All three share one field builder so the record content
// is identical across encodings.
package marc21

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

const dialectID = "marc21record::thoth"

// MARC relator codes for field 700 $4.
var relatorCode = map[model.ContributionType]string{
	model.ContributionAuthor:         "aut",
	model.ContributionEditor:         "edt",
	model.ContributionTranslator:     "trl",
	model.ContributionPhotographer:   "pht",
	model.ContributionIllustrator:    "ill",
	model.ContributionMusicEditor:    "mus",
	model.ContributionForewordBy:     "wpr",
	model.ContributionIntroductionBy: "win",
	model.ContributionAfterwordBy:    "wst",
	model.ContributionPrefaceBy:      "wpr",
}

// Subject source codes for 650 _7 $2. LCC codes go to 050 and keywords and
// custom categories to 653, so they carry no source code here.
var subjectSource = map[model.SubjectType]string{
	model.SubjectBIC:   "bicssc",
	model.SubjectBISAC: "bisacsh",
	model.SubjectThema: "thema",
}

// VerifyMappings checks the relator table against the canonical contribution
// types. Subject types outside subjectSource route to 050/653 by design, so
// only the relator table can silently fall out of date.
func VerifyMappings() error {
	for _, c := range model.AllContributionTypes {
		if _, ok := relatorCode[c]; !ok {
			return fmt.Errorf("marc21: no relator code for %q", c)
		}
	}
	return nil
}

type subfield struct {
	code  byte
	value string
}

type field struct {
	tag       string
	ind1      byte
	ind2      byte
	control   string // control fields (00X) carry data here, no subfields
	subfields []subfield
}

func dataField(tag string, ind1, ind2 byte, subs ...subfield) field {
	return field{tag: tag, ind1: ind1, ind2: ind2, subfields: subs}
}

// buildFields maps one work to its MARC field list, in tag order.
func buildFields(work *model.Work) ([]field, error) {
	var fields []field

	fields = append(fields, field{tag: "001", control: work.WorkID.String()})
	fields = append(fields, field{tag: "006", control: "m     o  d        "})
	fields = append(fields, field{tag: "007", control: "cr  n         "})
	fields = append(fields, field{tag: "008", control: field008(work)})

	for _, pub := range work.SortedPublications() {
		if pub.ISBN == "" {
			continue
		}
		f := dataField("020", ' ', ' ', subfield{'a', encode.StripISBN(pub.ISBN)})
		f.subfields = append(f.subfields, subfield{'q', string(pub.PublicationType)})
		fields = append(fields, f)
	}
	if work.DOI != "" {
		fields = append(fields, dataField("024", '7', ' ',
			subfield{'a', encode.BareDOI(work.DOI)},
			subfield{'2', "doi"},
		))
	}
	fields = append(fields, dataField("040", ' ', ' ',
		subfield{'a', work.Imprint.Publisher.PublisherName},
		subfield{'b', "eng"},
	))

	languages := work.SortedLanguages()
	if len(languages) > 1 {
		f := dataField("041", ' ', ' ')
		for _, l := range languages {
			code := byte('a')
			if l.LanguageRelation == model.RelationTranslatedFrom {
				code = 'h'
			}
			f.subfields = append(f.subfields, subfield{code, l.LanguageCode})
		}
		fields = append(fields, f)
	}

	for _, s := range work.SortedSubjects() {
		if s.SubjectType == model.SubjectLCC {
			fields = append(fields, dataField("050", '0', '0', subfield{'a', s.SubjectCode}))
		}
	}

	contributions := work.SortedContributions()
	mainEntry := firstAuthor(contributions)
	if mainEntry != nil {
		fields = append(fields, dataField("100", '1', ' ',
			subfield{'a', invertName(*mainEntry)},
			subfield{'e', "author."},
		))
	}

	fields = append(fields, field245(work, contributions))

	if work.Edition != nil && *work.Edition > 1 {
		fields = append(fields, dataField("250", ' ', ' ', subfield{'a', fmt.Sprintf("%d. ed.", *work.Edition)}))
	}
	fields = append(fields, field264(work))
	if work.PageCount != nil {
		fields = append(fields, dataField("300", ' ', ' ',
			subfield{'a', fmt.Sprintf("1 online resource (%d pages)", *work.PageCount)},
		))
	}
	for _, issue := range work.SortedIssues() {
		f := dataField("490", '0', ' ', subfield{'a', issue.Series.SeriesName})
		if issn := issueISSN(issue); issn != "" {
			f.subfields = append(f.subfields, subfield{'x', issn})
		}
		f.subfields = append(f.subfields, subfield{'v', strconv.Itoa(issue.IssueOrdinal)})
		fields = append(fields, f)
	}
	if model.ParseLicense(work.License).IsOpenAccess() {
		fields = append(fields, dataField("506", '0', ' ',
			subfield{'a', "Open access resource providing free access."},
		))
		fields = append(fields, dataField("540", ' ', ' ',
			subfield{'a', "This work is licensed under " + work.License + "."},
			subfield{'u', work.License},
		))
	}
	if work.LongAbstract != "" {
		fields = append(fields, dataField("520", ' ', ' ', subfield{'a', work.LongAbstract}))
	}
	fields = append(fields, dataField("538", ' ', ' ', subfield{'a', "Mode of access: World Wide Web."}))

	for _, s := range work.SortedSubjects() {
		switch s.SubjectType {
		case model.SubjectLCC:
			// emitted as 050 above
		case model.SubjectKeyword, model.SubjectCustom:
			fields = append(fields, dataField("653", ' ', ' ', subfield{'a', s.SubjectCode}))
		default:
			source, ok := subjectSource[s.SubjectType]
			if !ok {
				return nil, encode.Unmappable(dialectID, "subject_type", s.SubjectType)
			}
			fields = append(fields, dataField("650", ' ', '7',
				subfield{'a', s.SubjectCode},
				subfield{'2', source},
			))
		}
	}

	for _, c := range contributions {
		if mainEntry != nil && c == *mainEntry {
			continue
		}
		code, ok := relatorCode[c.ContributionType]
		if !ok {
			return nil, encode.Unmappable(dialectID, "contribution_type", c.ContributionType)
		}
		fields = append(fields, dataField("700", '1', ' ',
			subfield{'a', invertName(c)},
			subfield{'4', code},
		))
	}

	if work.DOI != "" {
		fields = append(fields, dataField("856", '4', '0',
			subfield{'u', work.DOI},
			subfield{'z', "Connect to e-book"},
		))
	} else if work.LandingPage != "" {
		fields = append(fields, dataField("856", '4', '0',
			subfield{'u', work.LandingPage},
			subfield{'z', "Connect to e-book"},
		))
	}
	if work.CoverURL != "" {
		fields = append(fields, dataField("856", '4', '2',
			subfield{'u', work.CoverURL},
			subfield{'z', "Connect to cover image"},
		))
	}

	return fields, nil
}

// field008 builds the fixed-length data elements. The date-entered positions
// come from the aggregate's own update timestamp so repeated exports of the
// same record stay byte-identical.
func field008(work *model.Work) string {
	b := []byte(strings.Repeat(" ", 40))
	copy(b[0:6], work.UpdatedAt.UTC().Format("060102"))
	b[6] = 's'
	if year := work.PublicationYear(); year != "" {
		copy(b[7:11], year)
	}
	copy(b[15:18], "xx ")
	b[23] = 'o'
	if main := work.MainLanguages(); len(main) > 0 {
		copy(b[35:38], main[0])
	}
	b[39] = 'd'
	return string(b)
}

func field245(work *model.Work, contributions []model.Contribution) field {
	ind1 := byte('0')
	if firstAuthor(contributions) != nil {
		ind1 = '1'
	}
	f := dataField("245", ind1, '0')
	if work.Subtitle != "" {
		f.subfields = append(f.subfields,
			subfield{'a', work.Title + " :"},
			subfield{'b', work.Subtitle + " /"},
		)
	} else {
		f.subfields = append(f.subfields, subfield{'a', work.Title + " /"})
	}
	var names []string
	for _, c := range contributions {
		names = append(names, c.FullName)
	}
	if len(names) > 0 {
		f.subfields = append(f.subfields, subfield{'c', strings.Join(names, ", ") + "."})
	}
	return f
}

func field264(work *model.Work) field {
	f := dataField("264", ' ', '1')
	place := work.Place
	if place == "" {
		place = "[Place of publication not identified]"
	}
	f.subfields = append(f.subfields,
		subfield{'a', place + " :"},
		subfield{'b', work.Imprint.ImprintName + ","},
	)
	if year := work.PublicationYear(); year != "" {
		f.subfields = append(f.subfields, subfield{'c', year + "."})
	}
	return f
}

func firstAuthor(contributions []model.Contribution) *model.Contribution {
	for i := range contributions {
		if contributions[i].ContributionType == model.ContributionAuthor {
			return &contributions[i]
		}
	}
	return nil
}

func invertName(c model.Contribution) string {
	if c.FirstName != "" {
		return c.LastName + ", " + c.FirstName
	}
	return c.FullName
}

func issueISSN(issue model.Issue) string {
	if issue.Series.ISSNDigital != "" {
		return issue.Series.ISSNDigital
	}
	return issue.Series.ISSNPrint
}
