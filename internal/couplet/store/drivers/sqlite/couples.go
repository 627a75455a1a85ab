package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
)

type couplesRepo struct{ q querier }

const coupleColumns = `c.id, c.partner1_id, c.partner2_id, c.invited_email, c.status,
	c.created_at, c.activated_at`

func scanCouple(row interface{ Scan(dest ...any) error }) (domain.Couple, error) {
	var (
		c                     domain.Couple
		partner2, invitedMail sql.NullString
		status                string
		createdAt             int64
		activatedAt           sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Partner1ID, &partner2, &invitedMail, &status, &createdAt, &activatedAt)
	if err != nil {
		return domain.Couple{}, mapNotFound(err)
	}
	c.Partner2ID = partner2.String
	c.InvitedEmail = invitedMail.String
	c.Status = domain.CoupleStatus(status)
	c.CreatedAt = fromUnixNano(createdAt)
	c.ActivatedAt = timePtr(activatedAt)
	return c, nil
}

func (r *couplesRepo) CreateCouple(ctx context.Context, c domain.Couple) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO couples (id, partner1_id, partner2_id, invited_email, status, created_at, activated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Partner1ID,
		nullString(c.Partner2ID),
		nullString(c.InvitedEmail),
		string(c.Status),
		unixNano(c.CreatedAt),
		nullUnixNano(c.ActivatedAt),
	)
	return mapUnique(err)
}

func (r *couplesRepo) GetCouple(ctx context.Context, id string) (domain.Couple, error) {
	return scanCouple(r.q.QueryRowContext(ctx,
		`SELECT `+coupleColumns+` FROM couples c WHERE c.id = ?`, id))
}

func (r *couplesRepo) ActivateCouple(ctx context.Context, id, partner2ID string, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE couples SET partner2_id = ?, status = 'active', activated_at = ?
		WHERE id = ? AND status = 'pending'`,
		partner2ID, unixNano(now), id,
	)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrConflict)
}

func (r *couplesRepo) FindPendingInvite(ctx context.Context, inviterID, email string) (domain.Couple, error) {
	return scanCouple(r.q.QueryRowContext(ctx, `
		SELECT `+coupleColumns+` FROM couples c
		WHERE c.partner1_id = ? AND c.invited_email = ? AND c.status = 'pending'
		ORDER BY c.created_at DESC
		LIMIT 1`,
		inviterID, email,
	))
}

func (r *couplesRepo) ListPendingByEmail(ctx context.Context, email string) ([]domain.Couple, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+coupleColumns+` FROM couples c
		JOIN profiles p ON p.id = c.partner1_id
		WHERE c.invited_email = ? AND c.status = 'pending' AND p.couple_id IS NULL
		ORDER BY c.created_at DESC`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Couple
	for rows.Next() {
		c, err := scanCouple(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
