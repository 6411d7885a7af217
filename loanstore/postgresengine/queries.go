package postgresengine

import (
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loans-go/loanstore"
)

const (
	dialectPostgres = "postgres"
	castText        = "TEXT"

	colBookID          = "book_id"
	colISBN            = "isbn"
	colTitle           = "title"
	colAuthor          = "author"
	colPublisher       = "publisher"
	colPublicationYear = "publication_year"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colCreatedAt       = "created_at"
	colUpdatedAt       = "updated_at"

	colPatronID    = "patron_id"
	colName        = "name"
	colEmail       = "email"
	colCategory    = "category"
	colBorrowLimit = "borrow_limit"

	colLoanID     = "loan_id"
	colBorrowedAt = "borrowed_at"
	colDueAt      = "due_at"
	colReturnedAt = "returned_at"
	colStatus     = "status"
	colExtensions = "extensions"

	colSequenceNumber = "sequence_number"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
)

type sqlQueryString = string

func dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// uuidCol selects a uuid column as text, which every driver scans into a string.
func uuidCol(name string) exp.CastExpression {
	return goqu.Cast(goqu.C(name), castText)
}

func bookColumns() []any {
	return []any{
		uuidCol(colBookID), colISBN, colTitle, colAuthor, colPublisher, colPublicationYear,
		colTotalCopies, colAvailableCopies, colCreatedAt, colUpdatedAt,
	}
}

func patronColumns() []any {
	return []any{
		uuidCol(colPatronID), colName, colEmail, colCategory, colBorrowLimit, colCreatedAt, colUpdatedAt,
	}
}

func loanColumns() []any {
	return []any{
		uuidCol(colLoanID), uuidCol(colBookID), uuidCol(colPatronID),
		colBorrowedAt, colDueAt, colReturnedAt, colStatus, colExtensions,
	}
}

func eventColumns() []any {
	return []any{colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber}
}

func toSQL(ds interface {
	ToSQL() (string, []any, error)
}) (sqlQueryString, error) {
	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s *Store) buildSelectBook(bookID uuid.UUID, lock bool) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.books).Select(bookColumns()...).
		Where(goqu.C(colBookID).Eq(bookID.String()))

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	return toSQL(stmt)
}

func (s *Store) buildSelectPatron(patronID uuid.UUID, lock bool) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.patrons).Select(patronColumns()...).
		Where(goqu.C(colPatronID).Eq(patronID.String()))

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	return toSQL(stmt)
}

func (s *Store) buildSelectLoan(loanID uuid.UUID, lock bool) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.loans).Select(loanColumns()...).
		Where(goqu.C(colLoanID).Eq(loanID.String()))

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	return toSQL(stmt)
}

func (s *Store) buildSelectOverdueCandidates(now time.Time, limit int) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.loans).Select(loanColumns()...).
		Where(
			goqu.C(colStatus).Eq(loanstore.LoanStatusOpen),
			goqu.C(colDueAt).Lt(now),
		).
		Order(goqu.C(colDueAt).Asc(), goqu.C(colLoanID).Asc()).
		Limit(uint(limit)).
		ForUpdate(exp.SkipLocked)

	return toSQL(stmt)
}

func (s *Store) buildCountLoans(where ...exp.Expression) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.loans).
		Select(goqu.COUNT(goqu.Star())).
		Where(where...)

	return toSQL(stmt)
}

func (s *Store) buildSelectLoans(filter loanstore.LoanFilter) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.loans).Select(loanColumns()...).
		Order(goqu.C(colBorrowedAt).Desc(), goqu.C(colLoanID).Asc())

	if filter.PatronID != uuid.Nil {
		stmt = stmt.Where(goqu.C(colPatronID).Eq(filter.PatronID.String()))
	}

	if filter.BookID != uuid.Nil {
		stmt = stmt.Where(goqu.C(colBookID).Eq(filter.BookID.String()))
	}

	if len(filter.Statuses) > 0 {
		stmt = stmt.Where(goqu.C(colStatus).In(filter.Statuses))
	}

	if filter.Limit > 0 {
		stmt = stmt.Limit(uint(filter.Limit))
	}

	return toSQL(stmt)
}

func (s *Store) buildSelectEvents(filter loanstore.JournalFilter) (sqlQueryString, error) {
	stmt := dialect().From(s.tables.events).Select(eventColumns()...).
		Order(goqu.C(colSequenceNumber).Asc())

	if len(filter.EventTypes()) > 0 {
		stmt = stmt.Where(goqu.C(colEventType).In(filter.EventTypes()))
	}

	if len(filter.Predicates()) > 0 {
		predicateExpressions := make([]exp.Expression, 0, len(filter.Predicates()))

		for _, predicate := range filter.Predicates() {
			containment, err := jsoniter.ConfigFastest.MarshalToString(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return "", errors.Join(loanstore.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(
				predicateExpressions,
				goqu.L("? @> ?::jsonb", goqu.C(colPayload), containment),
			)
		}

		stmt = stmt.Where(goqu.Or(predicateExpressions...))
	}

	if !filter.From().IsZero() {
		stmt = stmt.Where(goqu.C(colOccurredAt).Gte(filter.From()))
	}

	if !filter.Until().IsZero() {
		stmt = stmt.Where(goqu.C(colOccurredAt).Lte(filter.Until()))
	}

	return toSQL(stmt)
}

func (s *Store) buildInsertBook(book loanstore.BookRecord) (sqlQueryString, error) {
	return toSQL(dialect().Insert(s.tables.books).Rows(goqu.Record{
		colBookID:          book.BookID.String(),
		colISBN:            book.ISBN,
		colTitle:           book.Title,
		colAuthor:          book.Author,
		colPublisher:       book.Publisher,
		colPublicationYear: book.PublicationYear,
		colTotalCopies:     book.TotalCopies,
		colAvailableCopies: book.AvailableCopies,
		colCreatedAt:       book.CreatedAt,
		colUpdatedAt:       book.UpdatedAt,
	}))
}

func (s *Store) buildUpdateBook(book loanstore.BookRecord) (sqlQueryString, error) {
	return toSQL(dialect().Update(s.tables.books).Set(goqu.Record{
		colISBN:            book.ISBN,
		colTitle:           book.Title,
		colAuthor:          book.Author,
		colPublisher:       book.Publisher,
		colPublicationYear: book.PublicationYear,
		colTotalCopies:     book.TotalCopies,
		colAvailableCopies: book.AvailableCopies,
		colUpdatedAt:       book.UpdatedAt,
	}).Where(goqu.C(colBookID).Eq(book.BookID.String())))
}

func (s *Store) buildInsertPatron(patron loanstore.PatronRecord) (sqlQueryString, error) {
	return toSQL(dialect().Insert(s.tables.patrons).Rows(goqu.Record{
		colPatronID:    patron.PatronID.String(),
		colName:        patron.Name,
		colEmail:       patron.Email,
		colCategory:    patron.Category,
		colBorrowLimit: patron.BorrowLimit,
		colCreatedAt:   patron.CreatedAt,
		colUpdatedAt:   patron.UpdatedAt,
	}))
}

func (s *Store) buildUpdatePatron(patron loanstore.PatronRecord) (sqlQueryString, error) {
	return toSQL(dialect().Update(s.tables.patrons).Set(goqu.Record{
		colName:        patron.Name,
		colEmail:       patron.Email,
		colCategory:    patron.Category,
		colBorrowLimit: patron.BorrowLimit,
		colUpdatedAt:   patron.UpdatedAt,
	}).Where(goqu.C(colPatronID).Eq(patron.PatronID.String())))
}

func (s *Store) buildInsertLoan(loan loanstore.LoanRecord) (sqlQueryString, error) {
	return toSQL(dialect().Insert(s.tables.loans).Rows(goqu.Record{
		colLoanID:     loan.LoanID.String(),
		colBookID:     loan.BookID.String(),
		colPatronID:   loan.PatronID.String(),
		colBorrowedAt: loan.BorrowedAt,
		colDueAt:      loan.DueAt,
		colReturnedAt: nullableTime(loan.ReturnedAt),
		colStatus:     loan.Status,
		colExtensions: loan.Extensions,
	}))
}

func (s *Store) buildUpdateLoan(loan loanstore.LoanRecord) (sqlQueryString, error) {
	return toSQL(dialect().Update(s.tables.loans).Set(goqu.Record{
		colDueAt:      loan.DueAt,
		colReturnedAt: nullableTime(loan.ReturnedAt),
		colStatus:     loan.Status,
		colExtensions: loan.Extensions,
	}).Where(goqu.C(colLoanID).Eq(loan.LoanID.String())))
}

func (s *Store) buildDelete(table string, idColumn string, id uuid.UUID) (sqlQueryString, error) {
	return toSQL(dialect().Delete(table).Where(goqu.C(idColumn).Eq(id.String())))
}

func (s *Store) buildInsertEvent(event loanstore.StorableEvent) (sqlQueryString, error) {
	return toSQL(dialect().Insert(s.tables.events).Rows(goqu.Record{
		colEventType:  event.EventType,
		colOccurredAt: event.OccurredAt,
		colPayload:    goqu.L("?::jsonb", string(event.PayloadJSON)),
		colMetadata:   goqu.L("?::jsonb", string(event.MetadataJSON)),
	}))
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return *t
}
