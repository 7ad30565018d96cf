package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"molnet-polls/internal/domain/poll"
)

const pollSelect = `
        SELECT p.id, p.slug, p.title, p.description, p.creator_id, u.username,
               p.allow_new_choices, p.status, p.published_at, p.created_at, p.updated_at
        FROM polls p
        JOIN users u ON u.id = p.creator_id
    `

const choiceColumns = `c.id, c.poll_id, c.text, c.creator_id, c.created_at`

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

func (r *PollRepo) Create(ctx context.Context, p *poll.Poll, choices []poll.Choice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPoll := `
        INSERT INTO polls (slug, title, description, creator_id, allow_new_choices, status, published_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	err = tx.QueryRowContext(ctx, queryPoll,
		p.Slug,
		p.Title,
		p.Description,
		p.CreatorID,
		p.AllowNewChoices,
		string(p.Status),
		nullTime(p.PublishedAt),
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if violates(err, "title") {
			return poll.ErrTitleTaken
		}
		return err
	}

	for i := range choices {
		choices[i].PollID = p.ID
		if err := insertChoice(ctx, tx, &choices[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Poll, error) {
	return scanPoll(r.db.QueryRowContext(ctx, pollSelect+` WHERE p.id = $1`, id))
}

func (r *PollRepo) GetBySlug(ctx context.Context, slug string) (*poll.Poll, error) {
	return scanPoll(r.db.QueryRowContext(ctx, pollSelect+` WHERE p.slug = $1`, slug))
}

func (r *PollRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM polls WHERE slug = $1`, slug)
}

func (r *PollRepo) TitleExists(ctx context.Context, title string, exceptID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM polls WHERE title = $1 AND id <> $2`, title, exceptID)
}

func (r *PollRepo) Update(ctx context.Context, p *poll.Poll) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE polls
        SET title = $1, description = $2, allow_new_choices = $3, updated_at = $4
        WHERE id = $5
    `, p.Title, p.Description, p.AllowNewChoices, p.UpdatedAt, p.ID)
	if err != nil {
		if violates(err, "title") {
			return poll.ErrTitleTaken
		}
		return err
	}
	return requireAffected(res)
}

func (r *PollRepo) SetStatus(ctx context.Context, p *poll.Poll) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE polls SET status = $1, published_at = $2, updated_at = $3 WHERE id = $4
    `, string(p.Status), nullTime(p.PublishedAt), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes the poll; choices and votes go with it through ON DELETE CASCADE.
func (r *PollRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PollRepo) List(ctx context.Context, f poll.Filter) ([]poll.Poll, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(LOWER(p.title) LIKE $%d OR LOWER(p.description) LIKE $%d)", n, n))
	}

	query := pollSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.queryPolls(ctx, query, args...)
}

func (r *PollRepo) Recent(ctx context.Context, limit int) ([]poll.Poll, error) {
	query := pollSelect + ` WHERE p.status <> 'DRAFT' ORDER BY p.published_at DESC, p.id DESC`
	if limit > 0 {
		return r.queryPolls(ctx, query+` LIMIT $1`, limit)
	}
	return r.queryPolls(ctx, query)
}

func (r *PollRepo) CreatedBy(ctx context.Context, userID int64) ([]poll.Poll, error) {
	return r.queryPolls(ctx, pollSelect+`
        WHERE p.creator_id = $1
        ORDER BY COALESCE(p.published_at, p.created_at) DESC, p.id DESC
    `, userID)
}

func (r *PollRepo) AnsweredBy(ctx context.Context, userID int64) ([]poll.Poll, error) {
	return r.queryPolls(ctx, pollSelect+`
        JOIN votes v ON v.poll_id = p.id
        WHERE v.user_id = $1 AND p.status <> 'DRAFT'
        ORDER BY v.updated_at DESC, p.id DESC
    `, userID)
}

func (r *PollRepo) ChoicesWithVotes(ctx context.Context, pollID int64) ([]poll.Choice, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+choiceColumns+`, COUNT(v.id)
        FROM choices c
        LEFT JOIN votes v ON v.choice_id = c.id
        WHERE c.poll_id = $1
        GROUP BY c.id, c.poll_id, c.text, c.creator_id, c.created_at
        ORDER BY c.created_at, c.id
    `, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	choices := []poll.Choice{}
	for rows.Next() {
		var c poll.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.Text, &c.CreatorID, &c.CreatedAt, &c.Votes); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

func (r *PollRepo) GetChoice(ctx context.Context, id int64) (*poll.Choice, error) {
	var c poll.Choice
	err := r.db.QueryRowContext(ctx, `SELECT `+choiceColumns+` FROM choices c WHERE c.id = $1`, id).
		Scan(&c.ID, &c.PollID, &c.Text, &c.CreatorID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PollRepo) ChoiceExists(ctx context.Context, pollID int64, text string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM choices WHERE poll_id = $1 AND text = $2`, pollID, text)
}

func (r *PollRepo) AddChoice(ctx context.Context, c *poll.Choice) error {
	return insertChoice(ctx, r.db, c)
}

// DeleteChoice removes the choice and, through ON DELETE CASCADE, its votes.
func (r *PollRepo) DeleteChoice(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM choices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// NumberOfVotes counts vote rows pointing at any choice of the poll.
func (r *PollRepo) NumberOfVotes(ctx context.Context, pollID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM votes v
        JOIN choices c ON c.id = v.choice_id
        WHERE c.poll_id = $1
    `, pollID).Scan(&n)
	return n, err
}

func (r *PollRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

func (r *PollRepo) queryPolls(ctx context.Context, query string, args ...any) ([]poll.Poll, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []poll.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertChoice(ctx context.Context, q queryRower, c *poll.Choice) error {
	err := q.QueryRowContext(ctx, `
        INSERT INTO choices (poll_id, text, creator_id, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, c.PollID, c.Text, c.CreatorID, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", poll.ErrChoiceExists, c.Text)
		}
		return err
	}
	return nil
}

func scanPoll(row scanner) (*poll.Poll, error) {
	var (
		p           poll.Poll
		status      string
		publishedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.CreatorID, &p.CreatorName,
		&p.AllowNewChoices, &status, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = poll.Status(status)
	p.PublishedAt = timePtr(publishedAt)
	return &p, nil
}
