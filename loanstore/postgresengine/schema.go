package postgresengine

// Schema creates the tables of a Store with default table names. It is idempotent.
//
// The checks mirror the ledger and loan invariants so that a broken write fails in the database
// even if it got past the domain. Loans reference books and patrons with ON DELETE RESTRICT.
const Schema = `
CREATE TABLE IF NOT EXISTS books (
	book_id          uuid        PRIMARY KEY,
	isbn             text        NOT NULL UNIQUE,
	title            text        NOT NULL,
	author           text        NOT NULL,
	publisher        text        NOT NULL DEFAULT '',
	publication_year integer     NOT NULL DEFAULT 0,
	total_copies     integer     NOT NULL CHECK (total_copies >= 1),
	available_copies integer     NOT NULL CHECK (available_copies >= 0 AND available_copies <= total_copies),
	created_at       timestamptz NOT NULL,
	updated_at       timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS patrons (
	patron_id    uuid        PRIMARY KEY,
	name         text        NOT NULL,
	email        text        NOT NULL UNIQUE,
	category     text        NOT NULL CHECK (category IN ('standard', 'privileged')),
	borrow_limit integer     NOT NULL CHECK (borrow_limit >= 0),
	created_at   timestamptz NOT NULL,
	updated_at   timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
	loan_id     uuid        PRIMARY KEY,
	book_id     uuid        NOT NULL REFERENCES books (book_id) ON DELETE RESTRICT,
	patron_id   uuid        NOT NULL REFERENCES patrons (patron_id) ON DELETE RESTRICT,
	borrowed_at timestamptz NOT NULL,
	due_at      timestamptz NOT NULL CHECK (due_at > borrowed_at),
	returned_at timestamptz,
	status      text        NOT NULL CHECK (status IN ('open', 'overdue', 'returned')),
	extensions  integer     NOT NULL DEFAULT 0 CHECK (extensions >= 0),
	CHECK ((status = 'returned') = (returned_at IS NOT NULL))
);

CREATE INDEX IF NOT EXISTS loans_patron_status_idx ON loans (patron_id, status);
CREATE INDEX IF NOT EXISTS loans_book_idx ON loans (book_id);
CREATE INDEX IF NOT EXISTS loans_open_due_at_idx ON loans (due_at) WHERE status = 'open';
CREATE INDEX IF NOT EXISTS loans_borrowed_at_idx ON loans (borrowed_at DESC, loan_id);

CREATE TABLE IF NOT EXISTS loan_events (
	sequence_number bigserial   PRIMARY KEY,
	event_type      text        NOT NULL,
	occurred_at     timestamptz NOT NULL,
	payload         jsonb       NOT NULL,
	metadata        jsonb       NOT NULL
);

CREATE INDEX IF NOT EXISTS loan_events_payload_idx ON loan_events USING gin (payload jsonb_path_ops);
CREATE INDEX IF NOT EXISTS loan_events_occurred_at_idx ON loan_events (occurred_at);
`
