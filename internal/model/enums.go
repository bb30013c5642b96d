package model

// WorkType categorises a work.
type WorkType string

const (
	WorkTypeMonograph    WorkType = "monograph"
	WorkTypeEditedBook   WorkType = "edited-book"
	WorkTypeTextbook     WorkType = "textbook"
	WorkTypeJournalIssue WorkType = "journal-issue"
	WorkTypeBookSet      WorkType = "book-set"
	WorkTypeBookChapter  WorkType = "book-chapter"
)

// AllWorkTypes lists every work type in declaration order.
var AllWorkTypes = []WorkType{
	WorkTypeMonograph,
	WorkTypeEditedBook,
	WorkTypeTextbook,
	WorkTypeJournalIssue,
	WorkTypeBookSet,
	WorkTypeBookChapter,
}

// WorkStatus is the publishing status of a work.
type WorkStatus string

const (
	StatusUnspecified            WorkStatus = "unspecified"
	StatusCancelled              WorkStatus = "cancelled"
	StatusForthcoming            WorkStatus = "forthcoming"
	StatusPostponedIndefinitely  WorkStatus = "postponed-indefinitely"
	StatusActive                 WorkStatus = "active"
	StatusNoLongerOurProduct     WorkStatus = "no-longer-our-product"
	StatusOutOfStockIndefinitely WorkStatus = "out-of-stock-indefinitely"
	StatusOutOfPrint             WorkStatus = "out-of-print"
	StatusInactive               WorkStatus = "inactive"
	StatusUnknown                WorkStatus = "unknown"
	StatusRemaindered            WorkStatus = "remaindered"
	StatusWithdrawnFromSale      WorkStatus = "withdrawn-from-sale"
	StatusRecalled               WorkStatus = "recalled"
)

// AllWorkStatuses lists every work status in declaration order.
var AllWorkStatuses = []WorkStatus{
	StatusUnspecified,
	StatusCancelled,
	StatusForthcoming,
	StatusPostponedIndefinitely,
	StatusActive,
	StatusNoLongerOurProduct,
	StatusOutOfStockIndefinitely,
	StatusOutOfPrint,
	StatusInactive,
	StatusUnknown,
	StatusRemaindered,
	StatusWithdrawnFromSale,
	StatusRecalled,
}

// ContributionType is the role a contributor played on a work.
type ContributionType string

const (
	ContributionAuthor         ContributionType = "author"
	ContributionEditor         ContributionType = "editor"
	ContributionTranslator     ContributionType = "translator"
	ContributionPhotographer   ContributionType = "photographer"
	ContributionIllustrator    ContributionType = "illustrator"
	ContributionMusicEditor    ContributionType = "music-editor"
	ContributionForewordBy     ContributionType = "foreword-by"
	ContributionIntroductionBy ContributionType = "introduction-by"
	ContributionAfterwordBy    ContributionType = "afterword-by"
	ContributionPrefaceBy      ContributionType = "preface-by"
)

// AllContributionTypes lists every contribution type in declaration order.
var AllContributionTypes = []ContributionType{
	ContributionAuthor,
	ContributionEditor,
	ContributionTranslator,
	ContributionPhotographer,
	ContributionIllustrator,
	ContributionMusicEditor,
	ContributionForewordBy,
	ContributionIntroductionBy,
	ContributionAfterwordBy,
	ContributionPrefaceBy,
}

// SubjectType identifies the classification scheme of a subject code.
type SubjectType string

const (
	SubjectBIC     SubjectType = "bic"
	SubjectBISAC   SubjectType = "bisac"
	SubjectThema   SubjectType = "thema"
	SubjectLCC     SubjectType = "lcc"
	SubjectCustom  SubjectType = "custom"
	SubjectKeyword SubjectType = "keyword"
)

// AllSubjectTypes lists every subject type in declaration order.
var AllSubjectTypes = []SubjectType{
	SubjectBIC,
	SubjectBISAC,
	SubjectThema,
	SubjectLCC,
	SubjectCustom,
	SubjectKeyword,
}

// LanguageRelation describes how a language relates to a work.
type LanguageRelation string

const (
	RelationOriginal       LanguageRelation = "original"
	RelationTranslatedFrom LanguageRelation = "translated-from"
	RelationTranslatedInto LanguageRelation = "translated-into"
)

// SeriesType distinguishes journals from book series.
type SeriesType string

const (
	SeriesJournal    SeriesType = "journal"
	SeriesBookSeries SeriesType = "book-series"
)

// PublicationType is the physical or digital format of a publication.
type PublicationType string

const (
	PublicationPaperback PublicationType = "paperback"
	PublicationHardback  PublicationType = "hardback"
	PublicationPDF       PublicationType = "pdf"
	PublicationHTML      PublicationType = "html"
	PublicationXML       PublicationType = "xml"
	PublicationEpub      PublicationType = "epub"
	PublicationMobi      PublicationType = "mobi"
)

// AllPublicationTypes lists every publication type in declaration order.
var AllPublicationTypes = []PublicationType{
	PublicationPaperback,
	PublicationHardback,
	PublicationPDF,
	PublicationHTML,
	PublicationXML,
	PublicationEpub,
	PublicationMobi,
}

// IsDigital reports whether the publication type is an electronic format.
func (p PublicationType) IsDigital() bool {
	switch p {
	case PublicationPDF, PublicationHTML, PublicationXML, PublicationEpub, PublicationMobi:
		return true
	}
	return false
}
