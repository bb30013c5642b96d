// Package postgres implements the work provider directly against the metadata
// database, for deployments colocated with it. The schema is owned by the
// upstream API; every query here is read-only.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// Provider reads canonical aggregates from Postgres.
type Provider struct {
	db *pgxpool.Pool
}

// NewProvider wraps an existing connection pool.
func NewProvider(db *pgxpool.Pool) *Provider {
	return &Provider{db: db}
}

const workColumns = `
	w.work_id, w.work_type, w.work_status, w.title, w.subtitle, w.full_title,
	w.reference, w.edition, w.doi, w.publication_date, w.place, w.page_count,
	w.landing_page, w.license, w.cover_url, w.short_abstract, w.long_abstract,
	w.updated_at_with_relations,
	i.imprint_id, i.imprint_name,
	p.publisher_id, p.publisher_name, p.publisher_url
`

const workFrom = `
	FROM work w
	JOIN imprint i ON i.imprint_id = w.imprint_id
	JOIN publisher p ON p.publisher_id = i.publisher_id
`

// GetWork fetches one aggregate by identity.
func (r *Provider) GetWork(ctx context.Context, workID uuid.UUID) (model.Work, error) {
	row := r.db.QueryRow(ctx, "SELECT"+workColumns+workFrom+"WHERE w.work_id = $1", workID)
	work, err := scanWork(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Work{}, model.ErrNotFound
		}
		return model.Work{}, err
	}
	if err := r.loadRelations(ctx, []*model.Work{&work}); err != nil {
		return model.Work{}, err
	}
	return work, nil
}

// GetWorks fetches a page of a publisher's works. Ordering by last update then
// work id keeps pagination deterministic under concurrent upstream writes.
func (r *Provider) GetWorks(ctx context.Context, publisherID uuid.UUID, limit, offset int) ([]model.Work, error) {
	query := "SELECT" + workColumns + workFrom + `
	WHERE p.publisher_id = $1
	ORDER BY w.updated_at_with_relations DESC, w.work_id
	LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, publisherID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var works []model.Work
	for rows.Next() {
		work, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, work)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.Work, len(works))
	for i := range works {
		refs[i] = &works[i]
	}
	if err := r.loadRelations(ctx, refs); err != nil {
		return nil, err
	}
	return works, nil
}

// GetWorkLastUpdated fetches a work's last-update timestamp.
func (r *Provider) GetWorkLastUpdated(ctx context.Context, workID uuid.UUID) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow(ctx,
		"SELECT updated_at_with_relations FROM work WHERE work_id = $1", workID,
	).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, model.ErrNotFound
	}
	return updatedAt, err
}

// GetWorksLastUpdated fetches the most recent update timestamp across a
// publisher's works.
func (r *Provider) GetWorksLastUpdated(ctx context.Context, publisherID uuid.UUID) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, `
	SELECT w.updated_at_with_relations`+workFrom+`
	WHERE p.publisher_id = $1
	ORDER BY w.updated_at_with_relations DESC, w.work_id
	LIMIT 1`, publisherID).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, model.ErrNotFound
	}
	return updatedAt, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWork(row scanner) (model.Work, error) {
	var w model.Work
	var subtitle, reference, doi, place, landingPage, license, coverURL *string
	var shortAbstract, longAbstract, publisherURL *string
	var publicationDate *time.Time
	err := row.Scan(
		&w.WorkID, &w.WorkType, &w.WorkStatus, &w.Title, &subtitle, &w.FullTitle,
		&reference, &w.Edition, &doi, &publicationDate, &place, &w.PageCount,
		&landingPage, &license, &coverURL, &shortAbstract, &longAbstract,
		&w.UpdatedAt,
		&w.Imprint.ImprintID, &w.Imprint.ImprintName,
		&w.Imprint.Publisher.PublisherID, &w.Imprint.Publisher.PublisherName, &publisherURL,
	)
	if err != nil {
		return model.Work{}, err
	}
	w.Subtitle = deref(subtitle)
	w.Reference = deref(reference)
	w.DOI = deref(doi)
	w.PublicationDate = publicationDate
	w.Place = deref(place)
	w.LandingPage = deref(landingPage)
	w.License = deref(license)
	w.CoverURL = deref(coverURL)
	w.ShortAbstract = deref(shortAbstract)
	w.LongAbstract = deref(longAbstract)
	w.Imprint.Publisher.PublisherURL = deref(publisherURL)
	return w, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// loadRelations fills the sub-entity lists for a batch of works with one
// query per relation.
func (r *Provider) loadRelations(ctx context.Context, works []*model.Work) error {
	if len(works) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*model.Work, len(works))
	ids := make([]uuid.UUID, len(works))
	for i, w := range works {
		byID[w.WorkID] = w
		ids[i] = w.WorkID
	}
	if err := r.loadContributions(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadSubjects(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadLanguages(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadIssues(ctx, ids, byID); err != nil {
		return err
	}
	return r.loadPublications(ctx, ids, byID)
}

func (r *Provider) loadContributions(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*model.Work) error {
	rows, err := r.db.Query(ctx, `
	SELECT cn.work_id, cn.contribution_type, cn.full_name, cn.first_name,
	       cn.last_name, cn.main_contribution, cn.contribution_ordinal, cr.orcid
	FROM contribution cn
	JOIN contributor cr ON cr.contributor_id = cn.contributor_id
	WHERE cn.work_id = ANY($1)
	ORDER BY cn.work_id, cn.contribution_ordinal`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var workID uuid.UUID
		var c model.Contribution
		var firstName, orcid *string
		if err := rows.Scan(&workID, &c.ContributionType, &c.FullName, &firstName,
			&c.LastName, &c.MainContribution, &c.Ordinal, &orcid); err != nil {
			return err
		}
		c.FirstName = deref(firstName)
		c.ORCID = deref(orcid)
		byID[workID].Contributions = append(byID[workID].Contributions, c)
	}
	return rows.Err()
}

func (r *Provider) loadSubjects(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*model.Work) error {
	rows, err := r.db.Query(ctx, `
	SELECT work_id, subject_type, subject_code, subject_ordinal
	FROM subject
	WHERE work_id = ANY($1)
	ORDER BY work_id, subject_ordinal`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var workID uuid.UUID
		var s model.Subject
		if err := rows.Scan(&workID, &s.SubjectType, &s.SubjectCode, &s.Ordinal); err != nil {
			return err
		}
		byID[workID].Subjects = append(byID[workID].Subjects, s)
	}
	return rows.Err()
}

func (r *Provider) loadLanguages(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*model.Work) error {
	rows, err := r.db.Query(ctx, `
	SELECT work_id, language_code, language_relation, main_language
	FROM language
	WHERE work_id = ANY($1)
	ORDER BY work_id, language_code`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var workID uuid.UUID
		var l model.Language
		if err := rows.Scan(&workID, &l.LanguageCode, &l.LanguageRelation, &l.MainLanguage); err != nil {
			return err
		}
		byID[workID].Languages = append(byID[workID].Languages, l)
	}
	return rows.Err()
}

func (r *Provider) loadIssues(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*model.Work) error {
	rows, err := r.db.Query(ctx, `
	SELECT i.work_id, i.issue_ordinal, s.series_type, s.series_name,
	       s.issn_print, s.issn_digital
	FROM issue i
	JOIN series s ON s.series_id = i.series_id
	WHERE i.work_id = ANY($1)
	ORDER BY i.work_id, i.issue_ordinal`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var workID uuid.UUID
		var issue model.Issue
		var issnPrint, issnDigital *string
		if err := rows.Scan(&workID, &issue.IssueOrdinal, &issue.Series.SeriesType,
			&issue.Series.SeriesName, &issnPrint, &issnDigital); err != nil {
			return err
		}
		issue.Series.ISSNPrint = deref(issnPrint)
		issue.Series.ISSNDigital = deref(issnDigital)
		byID[workID].Issues = append(byID[workID].Issues, issue)
	}
	return rows.Err()
}

func (r *Provider) loadPublications(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*model.Work) error {
	rows, err := r.db.Query(ctx, `
	SELECT publication_id, work_id, publication_type, isbn,
	       width_mm, height_mm, depth_mm, weight_g
	FROM publication
	WHERE work_id = ANY($1)
	ORDER BY work_id, publication_type, isbn`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	// track where each publication landed so prices can attach to it
	type slot struct {
		workID uuid.UUID
		index  int
	}
	slots := make(map[uuid.UUID]slot)
	for rows.Next() {
		var publicationID, workID uuid.UUID
		var p model.Publication
		var isbn *string
		if err := rows.Scan(&publicationID, &workID, &p.PublicationType, &isbn,
			&p.WidthMM, &p.HeightMM, &p.DepthMM, &p.WeightG); err != nil {
			return err
		}
		p.ISBN = deref(isbn)
		work := byID[workID]
		work.Publications = append(work.Publications, p)
		slots[publicationID] = slot{workID: workID, index: len(work.Publications) - 1}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	priceRows, err := r.db.Query(ctx, `
	SELECT pr.publication_id, pr.currency_code, pr.unit_price
	FROM price pr
	JOIN publication pu ON pu.publication_id = pr.publication_id
	WHERE pu.work_id = ANY($1)
	ORDER BY pr.publication_id, pr.currency_code`, ids)
	if err != nil {
		return err
	}
	defer priceRows.Close()
	for priceRows.Next() {
		var publicationID uuid.UUID
		var price model.Price
		if err := priceRows.Scan(&publicationID, &price.CurrencyCode, &price.UnitPrice); err != nil {
			return err
		}
		s, ok := slots[publicationID]
		if !ok {
			continue
		}
		work := byID[s.workID]
		work.Publications[s.index].Prices = append(work.Publications[s.index].Prices, price)
	}
	return priceRows.Err()
}
