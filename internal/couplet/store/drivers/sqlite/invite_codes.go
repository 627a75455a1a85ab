package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/store"
)

type inviteCodesRepo struct{ q querier }

const inviteCodeColumns = `id, code, owner_id, created_at, expires_at, consumed, consumed_by, revoked_at`

func scanInviteCode(row interface{ Scan(dest ...any) error }) (domain.InviteCode, error) {
	var (
		c                    domain.InviteCode
		createdAt, expiresAt int64
		consumedBy           sql.NullString
		revokedAt            sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Code, &c.OwnerID, &createdAt, &expiresAt, &c.Consumed, &consumedBy, &revokedAt)
	if err != nil {
		return domain.InviteCode{}, mapNotFound(err)
	}
	c.CreatedAt = fromUnixNano(createdAt)
	c.ExpiresAt = fromUnixNano(expiresAt)
	c.ConsumedBy = consumedBy.String
	c.RevokedAt = timePtr(revokedAt)
	return c, nil
}

func (r *inviteCodesRepo) CreateInviteCode(ctx context.Context, c domain.InviteCode) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invite_codes (`+inviteCodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Code,
		c.OwnerID,
		unixNano(c.CreatedAt),
		unixNano(c.ExpiresAt),
		c.Consumed,
		nullString(c.ConsumedBy),
		nullUnixNano(c.RevokedAt),
	)
	return mapUnique(err)
}

func (r *inviteCodesRepo) GetLatestByOwner(ctx context.Context, ownerID string) (domain.InviteCode, error) {
	// id breaks ties between codes created in the same nanosecond; ULIDs are monotonic.
	return scanInviteCode(r.q.QueryRowContext(ctx, `
		SELECT `+inviteCodeColumns+` FROM invite_codes
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		ownerID,
	))
}

func (r *inviteCodesRepo) GetByCode(ctx context.Context, code string) (domain.InviteCode, error) {
	return scanInviteCode(r.q.QueryRowContext(ctx, `
		SELECT `+inviteCodeColumns+` FROM invite_codes
		WHERE code = ?
		ORDER BY (consumed = 0 AND revoked_at IS NULL) DESC, created_at DESC, id DESC
		LIMIT 1`,
		code,
	))
}

func (r *inviteCodesRepo) RevokeActive(ctx context.Context, ownerID string, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invite_codes SET revoked_at = ?
		WHERE owner_id = ? AND consumed = 0 AND revoked_at IS NULL`,
		unixNano(now), ownerID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *inviteCodesRepo) Consume(ctx context.Context, id, consumedBy string, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invite_codes SET consumed = 1, consumed_by = ?, consumed_at = ?
		WHERE id = ? AND consumed = 0 AND revoked_at IS NULL AND expires_at >= ?`,
		consumedBy, unixNano(now), id, unixNano(now),
	)
	if err != nil {
		return err
	}
	return expectOne(res, store.ErrConflict)
}

func (r *inviteCodesRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM invite_codes WHERE expires_at < ?`, unixNano(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
