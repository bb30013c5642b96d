package specs

import (
	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// Mandatory-field predicates. Each returns the canonical names of the fields
// a dialect requires but the aggregate lacks; an empty result means the
// aggregate may be rendered. Field names surface verbatim in error responses.

type requirement func(*model.Work) []string

func requireAll(reqs ...requirement) requirement {
	return func(w *model.Work) []string {
		var missing []string
		for _, req := range reqs {
			missing = append(missing, req(w)...)
		}
		return missing
	}
}

func requireWorkID(w *model.Work) []string {
	if w.WorkID == uuid.Nil {
		return []string{"work_id"}
	}
	return nil
}

func requireTitle(w *model.Work) []string {
	if w.Title == "" {
		return []string{"title"}
	}
	return nil
}

func requireDOI(w *model.Work) []string {
	if w.DOI == "" {
		return []string{"doi"}
	}
	return nil
}

func requireLicense(w *model.Work) []string {
	if w.License == "" {
		return []string{"license"}
	}
	return nil
}

func requirePublicationDate(w *model.Work) []string {
	if w.PublicationDate == nil {
		return []string{"publication_date"}
	}
	return nil
}

func requireISBN(w *model.Work) []string {
	if w.FirstISBN() == "" {
		return []string{"publications[].isbn"}
	}
	return nil
}

func requireAuthor(w *model.Work) []string {
	if len(w.ContributionsByType(model.ContributionAuthor)) == 0 {
		return []string{"contributions[type=author]"}
	}
	return nil
}

func requireAuthorOrEditor(w *model.Work) []string {
	if len(w.ContributionsByType(model.ContributionAuthor, model.ContributionEditor)) == 0 {
		return []string{"contributions[type=author|editor]"}
	}
	return nil
}

func requireOneMainLanguage(w *model.Work) []string {
	if len(w.MainLanguages()) != 1 {
		return []string{"languages[main_language]"}
	}
	return nil
}
